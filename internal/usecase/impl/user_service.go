// Package impl contains the concrete use case implementations wiring
// repositories and domain services together.
package impl

import (
	"context"
	"log/slog"
	"strings"

	"bazaar/internal/domain/entity"
	domainerrors "bazaar/internal/domain/errors"
	"bazaar/internal/domain/repository"
	"bazaar/internal/domain/service"
	"bazaar/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type userService struct {
	userRepo repository.UserRepository
	hasher   service.PasswordHasher
	tokens   service.TokenService
	logger   *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	UserRepo repository.UserRepository
	Hasher   service.PasswordHasher
	Tokens   service.TokenService
	Logger   *slog.Logger
}

// NewUserService creates the account service.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		userRepo: params.UserRepo,
		hasher:   params.Hasher,
		tokens:   params.Tokens,
		logger:   params.Logger,
	}
}

// Register creates an account and issues a token. Emails are unique; an
// unknown role value silently becomes the regular user role.
func (s *userService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, domainerrors.ErrUserAlreadyExists
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to check existing user")
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	user := &entity.User{
		ID:           uuid.New(),
		Username:     strings.TrimSpace(input.Username),
		Email:        email,
		PasswordHash: hash,
		Role:         entity.Coerce(input.Role),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to create user")
	}

	return s.issue(user)
}

// Login verifies credentials and issues a token. Unknown emails and wrong
// passwords are indistinguishable to the caller.
func (s *userService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	if !s.hasher.Check(input.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	return s.issue(user)
}

// GetMe returns the caller's own user view.
func (s *userService) GetMe(ctx context.Context, userID uuid.UUID) (*usecase.UserView, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	return viewOf(user), nil
}

// ListUsers returns every account, newest first.
func (s *userService) ListUsers(ctx context.Context) ([]*usecase.UserView, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	views := make([]*usecase.UserView, 0, len(users))
	for _, user := range users {
		views = append(views, viewOf(user))
	}

	return views, nil
}

// UpdateUserRole sets a user's role. Unlike registration, an unknown role
// value is rejected rather than coerced.
func (s *userService) UpdateUserRole(ctx context.Context, id uuid.UUID, input *usecase.RoleUpdateInput) (*usecase.UserView, error) {
	if input == nil {
		input = &usecase.RoleUpdateInput{}
	}

	role := entity.Role(input.Role)
	if !role.IsValid() {
		return nil, domainerrors.ErrInvalidRole
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	if err := s.userRepo.UpdateRole(ctx, id, role); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to update user role")
	}

	user.Role = role

	return viewOf(user), nil
}

// DeleteUser removes an account. The self-delete guard keeps an admin from
// locking themselves out.
func (s *userService) DeleteUser(ctx context.Context, id, callerID uuid.UUID) error {
	if id == callerID {
		return domainerrors.ErrCannotDeleteSelf
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound
		}

		return errors.Wrap(err, "failed to delete user")
	}

	return nil
}

func (s *userService) issue(user *entity.User) (*usecase.AuthOutput, error) {
	token, err := s.tokens.Generate(user.ID, user.Role)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate token")
	}

	return &usecase.AuthOutput{
		Token: token,
		User:  viewOf(user),
	}, nil
}

func viewOf(user *entity.User) *usecase.UserView {
	return &usecase.UserView{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.Role.String(),
		CreatedAt: user.CreatedAt,
	}
}
