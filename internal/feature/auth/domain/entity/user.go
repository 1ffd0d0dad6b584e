// Package entity defines the domain entities for the auth feature.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered user in the system.
// Users are immutable after signup.
type User struct {
	// ID is the server-generated unique identifier for the user.
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	// Username is the public handle of the user. It must be unique across all users.
	Username string `gorm:"uniqueIndex;size:64;not null"`

	// Email is the lower-cased email address used for authentication.
	// It must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password is the bcrypt hash of the user's password.
	// This never stores plaintext passwords. It is never serialized, so cached users carry no hash.
	Password string `gorm:"size:255;not null" json:"-"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time
}

