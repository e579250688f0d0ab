package validate

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	maxName     = 50
	maxPassword = 72 // bcrypt ignores anything longer
	minCoord    = 0.0
	maxCoord    = 100.0
)

// Name validates a user or product name: trimmed, non-empty, bounded length.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > maxName {
		return "", false
	}
	return s, true
}

// Password accepts any non-blank secret bcrypt can hash.
func Password(s string) bool {
	return strings.TrimSpace(s) != "" && len(s) <= maxPassword
}

// Coordinate parses a latitude or longitude on the [0,100] grid.
func Coordinate(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, InGrid(f)
}

func InGrid(f float64) bool {
	return !math.IsNaN(f) && f >= minCoord && f <= maxCoord
}

// Qty parses a strictly positive unit count.
func Qty(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// Units parses a stock level; zero is allowed.
func Units(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// Price parses a non-negative unit price.
func Price(s string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || d.IsNegative() {
		return decimal.Zero, false
	}
	return d, true
}

// ID parses a positive database identifier.
func ID(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// OneOf lower-cases s and reports whether it is one of allowed.
func OneOf(s string, allowed ...string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, a := range allowed {
		if s == a {
			return s, true
		}
	}
	return "", false
}
