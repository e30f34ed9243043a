package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RegisterInput is the account registration request.
type RegisterInput struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role"`
}

// LoginInput is the credential login request.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RoleUpdateInput is the admin role change request.
type RoleUpdateInput struct {
	Role string `json:"role" validate:"required"`
}

// UserView is the externally visible shape of a user; it never carries the
// password hash.
type UserView struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// AuthOutput is returned by register and login: a signed bearer token plus
// the user view.
type AuthOutput struct {
	Token string    `json:"token"`
	User  *UserView `json:"user"`
}

// UserUsecase defines the account use cases.
type UserUsecase interface {
	// Register creates an account, hashes the password and issues a token.
	// Unknown roles are coerced to the regular user role.
	Register(ctx context.Context, input *RegisterInput) (*AuthOutput, error)

	// Login verifies credentials and issues a token.
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)

	// GetMe returns the caller's own user view.
	GetMe(ctx context.Context, userID uuid.UUID) (*UserView, error)

	// ListUsers returns every account, newest first.
	ListUsers(ctx context.Context) ([]*UserView, error)

	// UpdateUserRole sets a user's role. Unknown role values are rejected,
	// never coerced.
	UpdateUserRole(ctx context.Context, id uuid.UUID, input *RoleUpdateInput) (*UserView, error)

	// DeleteUser removes an account. Callers cannot delete their own.
	DeleteUser(ctx context.Context, id, callerID uuid.UUID) error
}
