package auth

import (
	"context"

	"github.com/mmynk/chitwiser/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// This abstraction allows swapping between different auth methods (password, OTP, etc.)
// without changing the service layer code.
type Authenticator interface {
	// Register creates a PENDING account for the given phone number.
	// Only MEMBER and EMPLOYEE accounts can be self-registered.
	Register(ctx context.Context, name, phone, credential string, role models.Role) (*models.User, error)

	// Authenticate verifies the user's credentials and returns the user if successful.
	// Accounts that have not been approved cannot log in.
	Authenticate(ctx context.Context, phone, credential string) (*models.User, error)

	// ValidateCredential checks if the credential meets the implementation's requirements.
	ValidateCredential(credential string) error
}
