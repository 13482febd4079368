package user

import (
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of user roles. Adding a role is a compile-time
// decision, not a data migration.
type Role string

const (
	RoleClient Role = "client"
	RoleAdmin  Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleClient || r == RoleAdmin
}

// User is a persisted account. PasswordHash never leaves the process;
// the plaintext password is hashed at registration and discarded.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Username     string    `json:"user_name" db:"user_name"`
	Email        string    `json:"email" db:"email"`
	Age          int       `json:"age" db:"age"`
	Role         Role      `json:"role" db:"role"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
