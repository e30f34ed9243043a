package impl

import (
	"context"
	"testing"

	"bazaar/internal/domain/entity"
	domainerrors "bazaar/internal/domain/errors"
	"bazaar/internal/domain/repository"
	mockRepo "bazaar/internal/mocks/repository"
	mockService "bazaar/internal/mocks/service"
	"bazaar/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// userServiceFixtures holds all test dependencies for user service tests.
type userServiceFixtures struct {
	service  usecase.UserUsecase
	userRepo *mockRepo.MockUserRepository
	hasher   *mockService.MockPasswordHasher
	tokens   *mockService.MockTokenService
}

func createTestUserService(t *testing.T) userServiceFixtures {
	userRepo := mockRepo.NewMockUserRepository(t)
	hasher := mockService.NewMockPasswordHasher(t)
	tokens := mockService.NewMockTokenService(t)

	service := NewUserService(UserServiceParams{
		UserRepo: userRepo,
		Hasher:   hasher,
		Tokens:   tokens,
		Logger:   newDiscardLogger(),
	})

	return userServiceFixtures{
		service:  service,
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
	}
}

func TestUserService_Register_Success(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()

	fx.userRepo.EXPECT().
		FindByEmail(ctx, "ada@example.com").
		Return(nil, repository.ErrUserNotFound)

	fx.hasher.EXPECT().
		Hash("s3cret-pass").
		Return("hashed", nil)

	var created *entity.User
	fx.userRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.User")).
		Run(func(_ context.Context, user *entity.User) {
			created = user
		}).
		Return(nil)

	fx.tokens.EXPECT().
		Generate(mock.AnythingOfType("uuid.UUID"), entity.RoleUser).
		Return("signed-token", nil)

	out, err := fx.service.Register(ctx, &usecase.RegisterInput{
		Username: " ada ",
		Email:    "ADA@example.com ",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	assert.Equal(t, "signed-token", out.Token)
	assert.Equal(t, "ada", out.User.Username)
	assert.Equal(t, "ada@example.com", out.User.Email)
	assert.Equal(t, "user", out.User.Role)

	require.NotNil(t, created)
	assert.Equal(t, "hashed", created.PasswordHash)
}

func TestUserService_Register_CoercesUnknownRole(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()

	fx.userRepo.EXPECT().
		FindByEmail(ctx, "ada@example.com").
		Return(nil, repository.ErrUserNotFound)
	fx.hasher.EXPECT().
		Hash("s3cret-pass").
		Return("hashed", nil)
	fx.userRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.User")).
		Return(nil)
	fx.tokens.EXPECT().
		Generate(mock.AnythingOfType("uuid.UUID"), entity.RoleUser).
		Return("signed-token", nil)

	out, err := fx.service.Register(ctx, &usecase.RegisterInput{
		Username: "ada",
		Email:    "ada@example.com",
		Password: "s3cret-pass",
		Role:     "superuser",
	})
	require.NoError(t, err)
	assert.Equal(t, "user", out.User.Role)
}

func TestUserService_Register_AdminRoleKept(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()

	fx.userRepo.EXPECT().
		FindByEmail(ctx, "root@example.com").
		Return(nil, repository.ErrUserNotFound)
	fx.hasher.EXPECT().
		Hash("s3cret-pass").
		Return("hashed", nil)
	fx.userRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.User")).
		Return(nil)
	fx.tokens.EXPECT().
		Generate(mock.AnythingOfType("uuid.UUID"), entity.RoleAdmin).
		Return("signed-token", nil)

	out, err := fx.service.Register(ctx, &usecase.RegisterInput{
		Username: "root",
		Email:    "root@example.com",
		Password: "s3cret-pass",
		Role:     "admin",
	})
	require.NoError(t, err)
	assert.Equal(t, "admin", out.User.Role)
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()

	fx.userRepo.EXPECT().
		FindByEmail(ctx, "ada@example.com").
		Return(&entity.User{ID: uuid.New(), Email: "ada@example.com"}, nil)

	_, err := fx.service.Register(ctx, &usecase.RegisterInput{
		Username: "ada",
		Email:    "ada@example.com",
		Password: "s3cret-pass",
	})
	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
}

func TestUserService_Login_Success(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	userID := uuid.New()
	stored := &entity.User{
		ID:           userID,
		Username:     "ada",
		Email:        "ada@example.com",
		PasswordHash: "hashed",
		Role:         entity.RoleUser,
	}

	fx.userRepo.EXPECT().
		FindByEmail(ctx, "ada@example.com").
		Return(stored, nil)
	fx.hasher.EXPECT().
		Check("s3cret-pass", "hashed").
		Return(true)
	fx.tokens.EXPECT().
		Generate(userID, entity.RoleUser).
		Return("signed-token", nil)

	out, err := fx.service.Login(ctx, &usecase.LoginInput{
		Email:    "ada@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, "signed-token", out.Token)
	assert.Equal(t, userID, out.User.ID)
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	stored := &entity.User{
		ID:           uuid.New(),
		Email:        "ada@example.com",
		PasswordHash: "hashed",
		Role:         entity.RoleUser,
	}

	fx.userRepo.EXPECT().
		FindByEmail(ctx, "ada@example.com").
		Return(stored, nil)
	fx.hasher.EXPECT().
		Check("wrong", "hashed").
		Return(false)

	_, err := fx.service.Login(ctx, &usecase.LoginInput{
		Email:    "ada@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestUserService_Login_UnknownEmailLooksLikeBadCredentials(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()

	fx.userRepo.EXPECT().
		FindByEmail(ctx, "ghost@example.com").
		Return(nil, repository.ErrUserNotFound)

	_, err := fx.service.Login(ctx, &usecase.LoginInput{
		Email:    "ghost@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestUserService_GetMe(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	userID := uuid.New()
	stored := &entity.User{
		ID:       userID,
		Username: "ada",
		Email:    "ada@example.com",
		Role:     entity.RoleAdmin,
	}

	fx.userRepo.EXPECT().
		FindByID(ctx, userID).
		Return(stored, nil)

	view, err := fx.service.GetMe(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, userID, view.ID)
	assert.Equal(t, "admin", view.Role)
}

func TestUserService_GetMe_NotFound(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.userRepo.EXPECT().
		FindByID(ctx, userID).
		Return(nil, repository.ErrUserNotFound)

	_, err := fx.service.GetMe(ctx, userID)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestUserService_ListUsers(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	stored := []*entity.User{
		{ID: uuid.New(), Username: "bea", Email: "bea@example.com", Role: entity.RoleAdmin},
		{ID: uuid.New(), Username: "ada", Email: "ada@example.com", Role: entity.RoleUser},
	}

	fx.userRepo.EXPECT().
		FindAll(ctx).
		Return(stored, nil)

	views, err := fx.service.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "bea", views[0].Username)
	assert.Equal(t, "admin", views[0].Role)
	assert.Equal(t, "ada", views[1].Username)
}

func TestUserService_UpdateUserRole_Success(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	userID := uuid.New()
	stored := &entity.User{
		ID:       userID,
		Username: "ada",
		Email:    "ada@example.com",
		Role:     entity.RoleUser,
	}

	fx.userRepo.EXPECT().
		FindByID(ctx, userID).
		Return(stored, nil)
	fx.userRepo.EXPECT().
		UpdateRole(ctx, userID, entity.RoleAdmin).
		Return(nil)

	view, err := fx.service.UpdateUserRole(ctx, userID, &usecase.RoleUpdateInput{Role: "admin"})
	require.NoError(t, err)
	assert.Equal(t, "admin", view.Role)
}

func TestUserService_UpdateUserRole_UnknownRoleRejected(t *testing.T) {
	fx := createTestUserService(t)

	_, err := fx.service.UpdateUserRole(context.Background(), uuid.New(), &usecase.RoleUpdateInput{Role: "superuser"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidRole)
}

func TestUserService_UpdateUserRole_EmptyBodyRejected(t *testing.T) {
	fx := createTestUserService(t)

	_, err := fx.service.UpdateUserRole(context.Background(), uuid.New(), nil)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidRole)
}

func TestUserService_UpdateUserRole_NotFound(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.userRepo.EXPECT().
		FindByID(ctx, userID).
		Return(nil, repository.ErrUserNotFound)

	_, err := fx.service.UpdateUserRole(ctx, userID, &usecase.RoleUpdateInput{Role: "user"})
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestUserService_DeleteUser_Success(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.userRepo.EXPECT().
		Delete(ctx, userID).
		Return(nil)

	err := fx.service.DeleteUser(ctx, userID, uuid.New())
	require.NoError(t, err)
}

func TestUserService_DeleteUser_SelfRejected(t *testing.T) {
	fx := createTestUserService(t)

	callerID := uuid.New()

	err := fx.service.DeleteUser(context.Background(), callerID, callerID)
	assert.ErrorIs(t, err, domainerrors.ErrCannotDeleteSelf)
}

func TestUserService_DeleteUser_NotFound(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.userRepo.EXPECT().
		Delete(ctx, userID).
		Return(repository.ErrUserNotFound)

	err := fx.service.DeleteUser(ctx, userID, uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}
