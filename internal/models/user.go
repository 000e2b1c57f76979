package models

import (
	"encoding/json"
	"time"
)

// User represents a stored alumni identity, including the login credential.
type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"` // Never expose this to the client
	Name         string     `json:"name"`
	Role         string     `json:"role"`
	Class        string     `json:"class,omitempty"`
	Major        string     `json:"major,omitempty"`
	Company      string     `json:"company,omitempty"`
	Position     string     `json:"position,omitempty"`
	Location     string     `json:"location,omitempty"`
	Industries   []string   `json:"industries,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty"`
}

// storedUser is the persisted form of an identity. The credential hash is
// excluded from User's JSON tags so it can never leak through a response;
// the store carries it in this envelope instead.
type storedUser struct {
	User
	PasswordHash string `json:"passwordHash,omitempty"`
}

// EncodeUser serializes an identity for the record store, credential hash
// included.
func EncodeUser(u User) ([]byte, error) {
	return json.Marshal(storedUser{User: u, PasswordHash: u.PasswordHash})
}

// DecodeUser deserializes an identity from its stored form.
func DecodeUser(raw []byte) (User, error) {
	var s storedUser
	if err := json.Unmarshal(raw, &s); err != nil {
		return User{}, err
	}
	u := s.User
	u.PasswordHash = s.PasswordHash
	return u, nil
}

// UserProfilePatch is the set of profile fields a client may change about
// itself. Email, role and credential have no field here on purpose: a patch
// can never reach them.
type UserProfilePatch struct {
	Name       *string   `json:"name"`
	Class      *string   `json:"class"`
	Major      *string   `json:"major"`
	Company    *string   `json:"company"`
	Position   *string   `json:"position"`
	Location   *string   `json:"location"`
	Industries *[]string `json:"industries"`
}

// Apply merges the patch onto the user. Omitted fields are preserved.
func (p UserProfilePatch) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Class != nil {
		u.Class = *p.Class
	}
	if p.Major != nil {
		u.Major = *p.Major
	}
	if p.Company != nil {
		u.Company = *p.Company
	}
	if p.Position != nil {
		u.Position = *p.Position
	}
	if p.Location != nil {
		u.Location = *p.Location
	}
	if p.Industries != nil {
		u.Industries = *p.Industries
	}
}
