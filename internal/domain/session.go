package domain

// Session is the authenticated actor driving a workflow. It is passed to every
// service call instead of living in package state.
type Session struct {
	UserID int64   `json:"user_id"`
	Name   string  `json:"name"`
	Role   Role    `json:"role"`
	Lat    float64 `json:"latitude"`
	Lon    float64 `json:"longitude"`
}

func (s Session) Valid() bool     { return s.UserID > 0 }
func (s Session) IsManager() bool { return s.Role == RoleManager }
func (s Session) IsAdmin() bool   { return s.Role == RoleAdmin }
