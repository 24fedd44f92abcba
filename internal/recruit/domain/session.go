package domain

import "time"

// Session is a persisted login session. Only the SHA-256 fingerprint of the
// cookie token is stored; the raw token exists solely in the client cookie.
type Session struct {
	ID        string
	TokenHash string
	UserID    string
	ExpiresAt time.Time
	Revoked   bool
	CreatedAt time.Time
}

// Live reports whether the session may still authenticate requests at t.
func (s Session) Live(t time.Time) bool {
	return !s.Revoked && t.Before(s.ExpiresAt)
}
