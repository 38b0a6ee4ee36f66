package models

import (
	"strings"
	"time"
)

// User is a registered account. Users author tasks (creator) and may be
// assigned to perform them (executor).
type User struct {
	ID           int
	Username     string
	FirstName    string
	LastName     string
	PasswordHash string `json:"-"`
	CreatedAt    time.Time
}

// FullName returns "First Last", falling back to the username when both are empty
func (u *User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}

// GetID returns the user ID
func (u *User) GetID() int { return u.ID }
