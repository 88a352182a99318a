// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core identity in the system. Email is the login identifier
// and is unique across all users.
type User struct {
	ID           uuid.UUID  // The Global Unique Identifier (GUID) for the user.
	FirstName    string     // The user's given name.
	LastName     string     // The user's family name.
	Email        string     // The login identifier; unique, stored as given.
	PasswordHash string     // The bcrypt hash of the user's password. Never the plaintext.
	IsSuperuser  bool       // Grants access to administrative operations. Defaults to false.
	LastLogin    *time.Time // Set to the current UTC time on each successful login; nil until then.
	CreatedAt    time.Time  // Timestamp of when this account was created.
	UpdatedAt    time.Time  // Timestamp of the last modification to this user's data.
}

// FullName returns the user's display name.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
