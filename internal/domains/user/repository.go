package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the data access contract for users.
type Repository interface {
	// Create inserts a new user.
	// Errors: ErrUsernameExists, ErrEmailExists on unique violations.
	Create(ctx context.Context, u *User) (*User, error)

	// GetByID returns ErrUserNotFound when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)

	// GetByUsername returns ErrUserNotFound when absent.
	GetByUsername(ctx context.Context, username string) (*User, error)

	// GetAll lists every user, ordered by creation time.
	GetAll(ctx context.Context) ([]User, error)

	// Update rewrites the stored user.
	// Errors: ErrUserNotFound, ErrUsernameExists, ErrEmailExists.
	Update(ctx context.Context, u *User) (*User, error)

	// Delete removes a user by id. Errors: ErrUserNotFound.
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsByUsername checks uniqueness without fetching the row.
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// ExistsByEmail checks uniqueness without fetching the row.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
