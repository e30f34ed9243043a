package impl

import (
	"context"
	"testing"
	"time"

	"bazaar/internal/domain/entity"
	domainerrors "bazaar/internal/domain/errors"
	"bazaar/internal/domain/repository"
	"bazaar/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestOrderService_CreateOrder_Unauthenticated(t *testing.T) {
	fx := createTestOrderService(t)

	_, err := fx.service.CreateOrder(context.Background(), uuid.Nil, &usecase.CreateOrderInput{
		ShippingAddress: completeShipping(),
	})
	assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)
}

func TestOrderService_CreateOrder_IncompleteShipping(t *testing.T) {
	fx := createTestOrderService(t)

	address := completeShipping()
	address.LastName = ""

	_, err := fx.service.CreateOrder(context.Background(), uuid.New(), &usecase.CreateOrderInput{
		OrderItems:      []usecase.OrderItemInput{{Item: uuid.New().String()}},
		ShippingAddress: address,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrShippingIncomplete)
	assert.EqualError(t, err, "Shipping information is incomplete")
}

func TestOrderService_CreateOrder_NoItems(t *testing.T) {
	fx := createTestOrderService(t)

	_, err := fx.service.CreateOrder(context.Background(), uuid.New(), &usecase.CreateOrderInput{
		ShippingAddress: completeShipping(),
	})
	assert.ErrorIs(t, err, domainerrors.ErrNoOrderItems)
}

func TestOrderService_CreateOrder_MissingItemRef(t *testing.T) {
	fx := createTestOrderService(t)

	_, err := fx.service.CreateOrder(context.Background(), uuid.New(), &usecase.CreateOrderInput{
		OrderItems:      []usecase.OrderItemInput{{Item: ""}},
		ShippingAddress: completeShipping(),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrOrderItemMissingRef)
	assert.EqualError(t, err, "Item ID is missing in order item")
}

func TestOrderService_CreateOrder_UnknownItem(t *testing.T) {
	fx := createTestOrderService(t)

	itemID := uuid.New()
	fx.itemRepo.EXPECT().
		FindByID(mock.Anything, itemID).
		Return(nil, repository.ErrItemNotFound)

	_, err := fx.service.CreateOrder(context.Background(), uuid.New(), &usecase.CreateOrderInput{
		OrderItems:      []usecase.OrderItemInput{{Item: itemID.String()}},
		ShippingAddress: completeShipping(),
	})
	require.Error(t, err)
	assert.EqualError(t, err, "Product "+itemID.String()+" not found")
}

func TestOrderService_CreateOrder_MalformedItemRef(t *testing.T) {
	fx := createTestOrderService(t)

	_, err := fx.service.CreateOrder(context.Background(), uuid.New(), &usecase.CreateOrderInput{
		OrderItems:      []usecase.OrderItemInput{{Item: "not-a-uuid"}},
		ShippingAddress: completeShipping(),
	})
	require.Error(t, err)
	assert.EqualError(t, err, "Product not-a-uuid not found")
}

func TestOrderService_CreateOrder_InvalidQuantity(t *testing.T) {
	fx := createTestOrderService(t)

	itemID := uuid.New()
	fx.itemRepo.EXPECT().
		FindByID(mock.Anything, itemID).
		Return(&entity.Item{ID: itemID, Name: "Desk Lamp", Quantity: 5, Price: 40}, nil)

	_, err := fx.service.CreateOrder(context.Background(), uuid.New(), &usecase.CreateOrderInput{
		OrderItems:      []usecase.OrderItemInput{{Item: itemID.String(), Quantity: intPtr(0)}},
		ShippingAddress: completeShipping(),
	})
	require.Error(t, err)
	assert.EqualError(t, err, "Invalid quantity: 0")
}

func TestOrderService_CreateOrder_InsufficientStock(t *testing.T) {
	fx := createTestOrderService(t)

	itemID := uuid.New()
	fx.itemRepo.EXPECT().
		FindByID(mock.Anything, itemID).
		Return(&entity.Item{ID: itemID, Name: "Desk Lamp", Quantity: 2, Price: 40}, nil)

	_, err := fx.service.CreateOrder(context.Background(), uuid.New(), &usecase.CreateOrderInput{
		OrderItems:      []usecase.OrderItemInput{{Item: itemID.String(), Quantity: intPtr(3)}},
		ShippingAddress: completeShipping(),
	})
	require.Error(t, err)
	assert.EqualError(t, err, "Not enough stock for Desk Lamp. Only 2 available")
}

func TestOrderService_CreateOrder_InvalidEmail(t *testing.T) {
	fx := createTestOrderService(t)

	itemID := uuid.New()
	fx.itemRepo.EXPECT().
		FindByID(mock.Anything, itemID).
		Return(&entity.Item{ID: itemID, Name: "Desk Lamp", Quantity: 5, Price: 40}, nil)

	address := completeShipping()
	address.Email = "not-an-email"

	_, err := fx.service.CreateOrder(context.Background(), uuid.New(), &usecase.CreateOrderInput{
		OrderItems:      []usecase.OrderItemInput{{Item: itemID.String(), Quantity: intPtr(1)}},
		ShippingAddress: address,
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidEmail)
}

// A concurrent buyer can win the stock between validation and commit; the
// conditional decrement then fails and the whole transaction rolls back.
func TestOrderService_CreateOrder_StockLostBeforeCommit(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	userID := uuid.New()
	itemID := uuid.New()

	fx.itemRepo.EXPECT().
		FindByID(mock.Anything, itemID).
		Return(&entity.Item{ID: itemID, Name: "Desk Lamp", Quantity: 1, Price: 40}, nil).
		Once()

	fx.onExecute(ctx)
	fx.orderRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Order")).
		Return(nil)
	fx.itemRepo.EXPECT().
		DecrementStock(ctx, itemID, 1).
		Return(repository.ErrInsufficientStock)
	fx.itemRepo.EXPECT().
		FindByID(ctx, itemID).
		Return(&entity.Item{ID: itemID, Name: "Desk Lamp", Quantity: 0, Price: 40}, nil).
		Once()

	_, err := fx.service.CreateOrder(ctx, userID, &usecase.CreateOrderInput{
		OrderItems:      []usecase.OrderItemInput{{Item: itemID.String(), Quantity: intPtr(1)}},
		ShippingAddress: completeShipping(),
	})
	require.Error(t, err)
	assert.EqualError(t, err, "Not enough stock for Desk Lamp. Only 0 available")
}

func TestOrderService_GetOrder_NotFound(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	orderID := uuid.New()

	fx.orderRepo.EXPECT().
		FindByID(ctx, orderID).
		Return(nil, repository.ErrOrderNotFound)

	_, err := fx.service.GetOrder(ctx, orderID, uuid.New(), entity.RoleUser)
	assert.ErrorIs(t, err, domainerrors.ErrOrderNotFound)
}

func TestOrderService_GetOrder_AccessDenied(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	orderID := uuid.New()

	fx.orderRepo.EXPECT().
		FindByID(ctx, orderID).
		Return(&entity.Order{ID: orderID, UserID: uuid.New()}, nil)

	_, err := fx.service.GetOrder(ctx, orderID, uuid.New(), entity.RoleUser)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrOrderAccessDenied)
	assert.EqualError(t, err, "Not authorized to view this order")
}

func TestOrderService_MarkPaid_AlreadyPaid(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	orderID := uuid.New()
	paidAt := time.Now().Add(-time.Hour)
	stored := &entity.Order{
		ID:     orderID,
		UserID: uuid.New(),
		Status: entity.StatusProcessing,
		IsPaid: true,
		PaidAt: &paidAt,
	}

	fx.orderRepo.EXPECT().
		FindByID(ctx, orderID).
		Return(stored, nil)

	_, err := fx.service.MarkPaid(ctx, orderID, &usecase.MarkPaidInput{}, "buyer@example.com")
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrOrderAlreadyPaid)
	assert.Equal(t, paidAt, *stored.PaidAt)
}

func TestOrderService_UpdateStatus_Invalid(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	orderID := uuid.New()
	stored := &entity.Order{ID: orderID, UserID: uuid.New(), Status: entity.StatusPending}

	fx.orderRepo.EXPECT().
		FindByID(ctx, orderID).
		Return(stored, nil)

	_, err := fx.service.UpdateStatus(ctx, orderID, &usecase.StatusUpdateInput{Status: "teleported"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidStatus)
	assert.Equal(t, entity.StatusPending, stored.Status)
}
