// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the single identity record of the system. A User only comes into
// existence through the signup flow, after both the password hash and the
// resume upload have succeeded; it is never persisted with an empty ResumeURL
// and never mutated afterwards.
type User struct {
	ID           uuid.UUID // Store-assigned identifier, immutable after creation.
	Name         string    // Display name, non-empty.
	Email        string    // Login identifier, lower-cased and unique across all users.
	PasswordHash string    // bcrypt hash of the password; the plaintext is never stored.
	ResumeURL    string    // Durable URL of the uploaded resume, set exactly once at creation.
	CreatedAt    time.Time // Timestamp of when this account was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this record.
}
