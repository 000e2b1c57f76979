package models

import "time"

// Session is a point-in-time snapshot of a user's public fields, stored
// server-side under an opaque token. It is a copy, not a live reference:
// the snapshot can lag the identity until the next profile update refreshes
// it.
type Session struct {
	UserID     string    `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Role       string    `json:"role"`
	Class      string    `json:"class,omitempty"`
	Major      string    `json:"major,omitempty"`
	Company    string    `json:"company,omitempty"`
	Position   string    `json:"position,omitempty"`
	Location   string    `json:"location,omitempty"`
	Industries []string  `json:"industries,omitempty"`
	IssuedAt   time.Time `json:"issuedAt"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

// Expired reports whether the session's lifetime has elapsed.
func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// SnapshotUser copies the public fields of a user into a session snapshot.
// The credential hash is deliberately left behind.
func SnapshotUser(u User) Session {
	return Session{
		UserID:     u.ID,
		Email:      u.Email,
		Name:       u.Name,
		Role:       u.Role,
		Class:      u.Class,
		Major:      u.Major,
		Company:    u.Company,
		Position:   u.Position,
		Location:   u.Location,
		Industries: u.Industries,
	}
}
