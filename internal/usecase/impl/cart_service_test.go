package impl

import (
	"context"
	"testing"

	"bazaar/internal/domain/entity"
	domainerrors "bazaar/internal/domain/errors"
	"bazaar/internal/domain/repository"
	mockRepo "bazaar/internal/mocks/repository"
	"bazaar/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// cartServiceFixtures holds all test dependencies for cart service tests.
type cartServiceFixtures struct {
	service  usecase.CartUsecase
	cartRepo *mockRepo.MockCartRepository
	itemRepo *mockRepo.MockItemRepository
}

func createTestCartService(t *testing.T) cartServiceFixtures {
	cartRepo := mockRepo.NewMockCartRepository(t)
	itemRepo := mockRepo.NewMockItemRepository(t)

	service := NewCartService(CartServiceParams{
		CartRepo: cartRepo,
		ItemRepo: itemRepo,
		Logger:   newDiscardLogger(),
	})

	return cartServiceFixtures{
		service:  service,
		cartRepo: cartRepo,
		itemRepo: itemRepo,
	}
}

func TestCartService_GetCart_CreatesLazily(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.cartRepo.EXPECT().
		FindByUser(ctx, userID).
		Return(nil, repository.ErrCartNotFound)

	fx.cartRepo.EXPECT().
		Save(ctx, mock.AnythingOfType("*entity.Cart")).
		Return(nil)

	cart, err := fx.service.GetCart(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, cart)
	assert.Equal(t, userID, cart.UserID)
	assert.Empty(t, cart.Items)
	assert.Equal(t, 0.0, cart.Total)
}

func TestCartService_GetCart_PopulatesLines(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	item := &entity.Item{ID: uuid.New(), Name: "Desk Lamp", Quantity: 5, Price: 40}

	stored := entity.NewCart(userID)
	stored.AddLine(item, 2)

	fx.cartRepo.EXPECT().
		FindByUser(ctx, userID).
		Return(stored, nil)

	fx.itemRepo.EXPECT().
		FindByIDs(ctx, []uuid.UUID{item.ID}).
		Return([]*entity.Item{item}, nil)

	cart, err := fx.service.GetCart(ctx, userID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Same(t, item, cart.Items[0].Item)
}

func TestCartService_AddItem_NewLine(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	item := &entity.Item{ID: uuid.New(), Name: "Desk Lamp", Quantity: 5, Price: 40, ImageURL: "/img/lamp.png"}

	fx.itemRepo.EXPECT().
		FindByID(ctx, item.ID).
		Return(item, nil)

	fx.cartRepo.EXPECT().
		FindByUser(ctx, userID).
		Return(entity.NewCart(userID), nil)

	fx.cartRepo.EXPECT().
		Save(ctx, mock.AnythingOfType("*entity.Cart")).
		Return(nil)

	fx.itemRepo.EXPECT().
		FindByIDs(ctx, []uuid.UUID{item.ID}).
		Return([]*entity.Item{item}, nil)

	cart, err := fx.service.AddItem(ctx, userID, item.ID, 2)
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, item.ID, cart.Items[0].ItemID)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, 40.0, cart.Items[0].Price)
	assert.Equal(t, "Desk Lamp", cart.Items[0].Name)
	assert.Equal(t, 80.0, cart.Total)
}

func TestCartService_AddItem_MergesQuantities(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	item := &entity.Item{ID: uuid.New(), Name: "Desk Lamp", Quantity: 10, Price: 40}

	stored := entity.NewCart(userID)
	stored.AddLine(item, 2)

	fx.itemRepo.EXPECT().
		FindByID(ctx, item.ID).
		Return(item, nil)
	fx.cartRepo.EXPECT().
		FindByUser(ctx, userID).
		Return(stored, nil)
	fx.cartRepo.EXPECT().
		Save(ctx, stored).
		Return(nil)
	fx.itemRepo.EXPECT().
		FindByIDs(ctx, []uuid.UUID{item.ID}).
		Return([]*entity.Item{item}, nil)

	cart, err := fx.service.AddItem(ctx, userID, item.ID, 3)
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.Equal(t, 200.0, cart.Total)
}

func TestCartService_AddItem_RequestedQuantityExceedsStock(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	item := &entity.Item{ID: uuid.New(), Name: "Desk Lamp", Quantity: 4, Price: 40}

	fx.itemRepo.EXPECT().
		FindByID(ctx, item.ID).
		Return(item, nil)
	fx.cartRepo.EXPECT().
		FindByUser(ctx, userID).
		Return(entity.NewCart(userID), nil)

	_, err := fx.service.AddItem(ctx, userID, item.ID, 5)
	require.Error(t, err)
	assert.EqualError(t, err, "Only 4 items available in stock")
}

func TestCartService_AddItem_UnknownItem(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	itemID := uuid.New()

	fx.itemRepo.EXPECT().
		FindByID(ctx, itemID).
		Return(nil, repository.ErrItemNotFound)

	_, err := fx.service.AddItem(ctx, uuid.New(), itemID, 1)
	assert.ErrorIs(t, err, domainerrors.ErrItemNotFound)
}

func TestCartService_AddItem_InvalidQuantity(t *testing.T) {
	fx := createTestCartService(t)

	_, err := fx.service.AddItem(context.Background(), uuid.New(), uuid.New(), 0)
	require.Error(t, err)
	assert.EqualError(t, err, "Invalid quantity: 0")
}

func TestCartService_UpdateItem_ReplacesQuantity(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	item := &entity.Item{ID: uuid.New(), Name: "Desk Lamp", Quantity: 10, Price: 40}

	stored := entity.NewCart(userID)
	stored.AddLine(item, 2)

	fx.itemRepo.EXPECT().
		FindByID(ctx, item.ID).
		Return(item, nil)
	fx.cartRepo.EXPECT().
		FindByUser(ctx, userID).
		Return(stored, nil)
	fx.cartRepo.EXPECT().
		Save(ctx, stored).
		Return(nil)
	fx.itemRepo.EXPECT().
		FindByIDs(ctx, []uuid.UUID{item.ID}).
		Return([]*entity.Item{item}, nil)

	cart, err := fx.service.UpdateItem(ctx, userID, item.ID, 7)
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 7, cart.Items[0].Quantity)
	assert.Equal(t, 280.0, cart.Total)
}

func TestCartService_UpdateItem_LineNotInCart(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	item := &entity.Item{ID: uuid.New(), Name: "Desk Lamp", Quantity: 10, Price: 40}

	fx.itemRepo.EXPECT().
		FindByID(ctx, item.ID).
		Return(item, nil)
	fx.cartRepo.EXPECT().
		FindByUser(ctx, userID).
		Return(entity.NewCart(userID), nil)

	_, err := fx.service.UpdateItem(ctx, userID, item.ID, 1)
	assert.ErrorIs(t, err, domainerrors.ErrCartLineNotFound)
}

func TestCartService_UpdateItem_RejectsZeroQuantity(t *testing.T) {
	fx := createTestCartService(t)

	_, err := fx.service.UpdateItem(context.Background(), uuid.New(), uuid.New(), 0)
	require.Error(t, err)
	assert.EqualError(t, err, "Invalid quantity: 0")
}

func TestCartService_RemoveItem_AbsentLineIsNoError(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()

	stored := entity.NewCart(userID)

	fx.cartRepo.EXPECT().
		FindByUser(ctx, userID).
		Return(stored, nil)
	fx.cartRepo.EXPECT().
		Save(ctx, stored).
		Return(nil)

	cart, err := fx.service.RemoveItem(ctx, userID, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestCartService_ClearCart(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	item := &entity.Item{ID: uuid.New(), Name: "Desk Lamp", Quantity: 10, Price: 40}

	stored := entity.NewCart(userID)
	stored.AddLine(item, 2)

	fx.cartRepo.EXPECT().
		FindByUser(ctx, userID).
		Return(stored, nil)
	fx.cartRepo.EXPECT().
		Save(ctx, stored).
		Return(nil)

	err := fx.service.ClearCart(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, stored.Items)
	assert.Equal(t, 0.0, stored.Total)
}

func TestCartService_ClearCart_AbsentCartNotFound(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.cartRepo.EXPECT().
		FindByUser(ctx, userID).
		Return(nil, repository.ErrCartNotFound)

	err := fx.service.ClearCart(ctx, userID)
	assert.ErrorIs(t, err, domainerrors.ErrCartNotFound)
}
