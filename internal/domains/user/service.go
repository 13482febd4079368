package user

import (
	"context"

	"github.com/google/uuid"
)

// Service is the business logic contract for the user domain.
type Service interface {
	// Register creates an account after role-enum validation and
	// username/email uniqueness checks. The password is hashed with
	// bcrypt; the plaintext is never stored.
	// Errors: ErrInvalidRole, ErrUsernameExists, ErrEmailExists.
	Register(ctx context.Context, req RegisterRequest) (*User, error)

	// Login verifies the password and issues a signed one-hour token.
	// Any failure (unknown user, wrong password) reports
	// ErrInvalidCredentials without distinguishing the cause.
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)

	// Create is the direct admin insert. Role defaults to client.
	Create(ctx context.Context, req CreateUserRequest) (*User, error)

	GetAll(ctx context.Context) ([]User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)

	// Update merges the payload over the stored user.
	Update(ctx context.Context, id uuid.UUID, req UpdateUserRequest) (*User, error)

	// Replace rewrites the stored user wholesale.
	Replace(ctx context.Context, id uuid.UUID, req ReplaceUserRequest) (*User, error)

	Delete(ctx context.Context, id uuid.UUID) error
}
