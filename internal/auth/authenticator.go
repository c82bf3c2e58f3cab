// Package auth registers and authenticates users and issues the bearer
// tokens the RPC layer checks.
package auth

import (
	"context"

	"github.com/mmynk/kitty/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// Services depend on it rather than on a concrete credential scheme.
type Authenticator interface {
	// Register creates a new user account with the given email and credential.
	// Returns the created user or an error if registration fails.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate verifies the user's credentials and returns the user if successful.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential checks if the credential meets the implementation's requirements.
	ValidateCredential(credential string) error
}
