package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered person who can belong to groups.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// DisplayName is the name shown to other members.
	DisplayName string

	// Email is the user's email address (unique).
	Email string

	// PhoneNumber is optional. Empty when not provided.
	PhoneNumber string

	// PasswordHash is the bcrypt hash set by password registration.
	// Empty for users created without credentials.
	PasswordHash string

	// CreatedAt is the Unix timestamp when the user was created.
	CreatedAt int64
}

// NewUser creates a User with a fresh ID and creation time.
func NewUser(email, displayName, passwordHash string) *User {
	return &User{
		ID:           uuid.New().String(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().Unix(),
	}
}
