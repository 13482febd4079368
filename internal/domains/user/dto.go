package user

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// RegisterRequest - POST /users/register
type RegisterRequest struct {
	Username string `json:"user_name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Age      int    `json:"age"`
	Password string `json:"password" binding:"required"`
	Role     Role   `json:"role" binding:"required"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required.Error("user_name is required")),
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.Email.Error("valid email address is required"),
		),
		validation.Field(&r.Age, validation.Min(0)),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.Length(6, 128).Error("password must be at least 6 characters long"),
		),
	)
}

// LoginRequest - POST /users/login
type LoginRequest struct {
	Username string `json:"user_name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// LoginResponse carries the issued credential.
type LoginResponse struct {
	Token string `json:"token"`
}

// CreateUserRequest - POST /users (admin insert, no self-service rules)
type CreateUserRequest struct {
	Username  string     `json:"user_name" binding:"required"`
	Email     string     `json:"email" binding:"required"`
	Age       int        `json:"age"`
	Password  string     `json:"password" binding:"required"`
	Role      Role       `json:"role"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

func (r CreateUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required.Error("user_name is required")),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Age, validation.Min(0)),
		validation.Field(&r.Password, validation.Required, validation.Length(6, 128)),
	)
}

// UpdateUserRequest - PATCH /users/:id, all fields optional.
type UpdateUserRequest struct {
	Username *string `json:"user_name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Age      *int    `json:"age,omitempty"`
	Role     *Role   `json:"role,omitempty"`
}

func (r UpdateUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.When(r.Email != nil, is.Email)),
		validation.Field(&r.Age, validation.When(r.Age != nil, validation.Min(0))),
	)
}

// ReplaceUserRequest - PUT /users/:id, full payload.
type ReplaceUserRequest struct {
	Username string `json:"user_name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Age      int    `json:"age"`
	Role     Role   `json:"role" binding:"required"`
}

func (r ReplaceUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Age, validation.Min(0)),
	)
}

// ApplyTo merges the non-nil fields over an existing user.
func (r UpdateUserRequest) ApplyTo(u *User) {
	if r.Username != nil {
		u.Username = *r.Username
	}
	if r.Email != nil {
		u.Email = *r.Email
	}
	if r.Age != nil {
		u.Age = *r.Age
	}
	if r.Role != nil {
		u.Role = *r.Role
	}
}
