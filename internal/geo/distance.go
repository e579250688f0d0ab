// Package geo holds the planar distance used to decide which stores a user can
// reach. Coordinates live on a synthetic [0,100] grid, not real degrees.
package geo

import "math"

// Range is the farthest a store may be from a user and still serve them.
const Range = 30.0

func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := lat1 - lat2
	dLon := lon1 - lon2
	return math.Sqrt(dLat*dLat + dLon*dLon)
}

func Within(d float64) bool { return d <= Range }
