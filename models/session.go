package models

import "time"

type Session struct {
	UserID                string    `json:"user_id"`
	UserName              string    `json:"user_name"`
	Role                  string    `json:"role"`
	SessionID             string    `json:"session_id"`
	HostName              string    `json:"host_name"`
	IPAddress             string    `json:"ip_address"`
	Timestamp             time.Time `json:"timestp"`
	ExpiresAt             time.Time `json:"expires_at"`
	RefreshToken          string    `json:"refresh_token,omitempty"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at,omitempty"`
}

// Live reports whether the session can still be refreshed at t.
func (s *Session) Live(t time.Time) bool {
	return t.Before(s.RefreshTokenExpiresAt)
}

// ActivityEntry is one audit record before it is persisted.
type ActivityEntry struct {
	EventContext   string
	EventName      string
	Description    string
	UserName       string
	UserID         string
	HostName       string
	IPAddress      string
	SheetName      string
	RowIndex       int
	ChangedColumns []string
}
