package impl

import (
	"context"
	"testing"

	"bazaar/internal/domain/entity"
	domainerrors "bazaar/internal/domain/errors"
	"bazaar/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func completeShipping() usecase.ShippingAddressInput {
	return usecase.ShippingAddressInput{
		FirstName:  "Ada",
		LastName:   "Lovelace",
		Email:      "ada@example.com",
		Address:    "12 Analytical Way",
		City:       "London",
		PostalCode: "SW1A 1AA",
		Country:    "United Kingdom",
	}
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func TestOrderService_CreateOrder_Success(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	userID := uuid.New()
	itemID := uuid.New()
	catalogItem := &entity.Item{
		ID:       itemID,
		Name:     "Mechanical Keyboard",
		Quantity: 10,
		Price:    50,
		ImageURL: "/img/keyboard.png",
	}

	fx.itemRepo.EXPECT().
		FindByID(mock.Anything, itemID).
		Return(catalogItem, nil)

	fx.onExecute(ctx)

	var created *entity.Order
	fx.orderRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Order")).
		Run(func(_ context.Context, order *entity.Order) {
			created = order
		}).
		Return(nil)

	fx.itemRepo.EXPECT().
		DecrementStock(ctx, itemID, 1).
		Return(nil)

	cart := entity.NewCart(userID)
	cart.AddLine(catalogItem, 1)
	fx.cartRepo.EXPECT().
		FindByUser(ctx, userID).
		Return(cart, nil)

	fx.cartRepo.EXPECT().
		Save(ctx, cart).
		Return(nil)

	fx.publisher.EXPECT().
		PublishOrderEvent(ctx, mock.AnythingOfType("*service.OrderEvent")).
		Return(nil)

	fx.receipts.EXPECT().
		SendOrderReceipt(ctx, mock.AnythingOfType("*entity.Order")).
		Return(nil)

	input := &usecase.CreateOrderInput{
		OrderItems: []usecase.OrderItemInput{
			{Item: itemID.String(), Quantity: intPtr(1)},
		},
		ShippingAddress: completeShipping(),
	}

	order, err := fx.service.CreateOrder(ctx, userID, input)
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Same(t, order, created)

	assert.Equal(t, userID, order.UserID)
	assert.Equal(t, entity.StatusPending, order.Status)
	assert.Equal(t, entity.DefaultPaymentMethod, order.PaymentMethod)
	assert.Equal(t, "ada@example.com", order.Email)

	require.Len(t, order.OrderItems, 1)
	assert.Equal(t, "Mechanical Keyboard", order.OrderItems[0].Name)
	assert.Equal(t, 50.0, order.OrderItems[0].Price)
	assert.Equal(t, "/img/keyboard.png", order.OrderItems[0].ImageURL)

	assert.Equal(t, 50.0, order.ItemsPrice)
	assert.Equal(t, 10.0, order.ShippingPrice)
	assert.Equal(t, 7.5, order.TaxPrice)
	assert.Equal(t, 67.5, order.TotalPrice)

	assert.Empty(t, cart.Items)
	assert.Equal(t, 0.0, cart.Total)
}

func TestOrderService_CreateOrder_FreeShippingOverThreshold(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	userID := uuid.New()
	itemID := uuid.New()
	catalogItem := &entity.Item{ID: itemID, Name: "Desk Lamp", Quantity: 5, Price: 40}

	fx.itemRepo.EXPECT().
		FindByID(mock.Anything, itemID).
		Return(catalogItem, nil)

	fx.onExecute(ctx)
	fx.orderRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Order")).
		Return(nil)
	fx.itemRepo.EXPECT().
		DecrementStock(ctx, itemID, 3).
		Return(nil)
	fx.cartRepo.EXPECT().
		FindByUser(ctx, userID).
		Return(entity.NewCart(userID), nil)
	fx.cartRepo.EXPECT().
		Save(ctx, mock.AnythingOfType("*entity.Cart")).
		Return(nil)
	fx.publisher.EXPECT().
		PublishOrderEvent(ctx, mock.AnythingOfType("*service.OrderEvent")).
		Return(nil)
	fx.receipts.EXPECT().
		SendOrderReceipt(ctx, mock.AnythingOfType("*entity.Order")).
		Return(nil)

	input := &usecase.CreateOrderInput{
		OrderItems: []usecase.OrderItemInput{
			{Item: itemID.String(), Quantity: intPtr(3)},
		},
		ShippingAddress: completeShipping(),
	}

	order, err := fx.service.CreateOrder(ctx, userID, input)
	require.NoError(t, err)

	assert.Equal(t, 120.0, order.ItemsPrice)
	assert.Equal(t, 0.0, order.ShippingPrice)
	assert.Equal(t, 18.0, order.TaxPrice)
	assert.Equal(t, 138.0, order.TotalPrice)
}

func TestOrderService_CreateOrder_ClientPriceOverridesCatalog(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	userID := uuid.New()
	itemID := uuid.New()
	catalogItem := &entity.Item{ID: itemID, Name: "Desk Lamp", Quantity: 5, Price: 40}

	fx.itemRepo.EXPECT().
		FindByID(mock.Anything, itemID).
		Return(catalogItem, nil)

	fx.onExecute(ctx)
	fx.orderRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Order")).
		Return(nil)
	fx.itemRepo.EXPECT().
		DecrementStock(ctx, itemID, 1).
		Return(nil)
	fx.cartRepo.EXPECT().
		FindByUser(ctx, userID).
		Return(entity.NewCart(userID), nil)
	fx.cartRepo.EXPECT().
		Save(ctx, mock.AnythingOfType("*entity.Cart")).
		Return(nil)
	fx.publisher.EXPECT().
		PublishOrderEvent(ctx, mock.AnythingOfType("*service.OrderEvent")).
		Return(nil)
	fx.receipts.EXPECT().
		SendOrderReceipt(ctx, mock.AnythingOfType("*entity.Order")).
		Return(nil)

	input := &usecase.CreateOrderInput{
		OrderItems: []usecase.OrderItemInput{
			{Item: itemID.String(), Quantity: intPtr(1), Price: floatPtr(35), Name: "Lamp (sale)"},
		},
		ShippingAddress: completeShipping(),
	}

	order, err := fx.service.CreateOrder(ctx, userID, input)
	require.NoError(t, err)

	require.Len(t, order.OrderItems, 1)
	assert.Equal(t, 35.0, order.OrderItems[0].Price)
	assert.Equal(t, "Lamp (sale)", order.OrderItems[0].Name)
	assert.Equal(t, 35.0, order.ItemsPrice)
}

func TestOrderService_CreateOrder_EmptyBodyRejected(t *testing.T) {
	fx := createTestOrderService(t)

	_, err := fx.service.CreateOrder(context.Background(), uuid.New(), nil)
	assert.ErrorIs(t, err, domainerrors.ErrShippingIncomplete)
}

func TestOrderService_GetOrder_Owner(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	userID := uuid.New()
	orderID := uuid.New()
	stored := &entity.Order{ID: orderID, UserID: userID, Status: entity.StatusPending}

	fx.orderRepo.EXPECT().
		FindByID(ctx, orderID).
		Return(stored, nil)

	order, err := fx.service.GetOrder(ctx, orderID, userID, entity.RoleUser)
	require.NoError(t, err)
	assert.Same(t, stored, order)
}

func TestOrderService_GetOrder_AdminCanReadAny(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	orderID := uuid.New()
	stored := &entity.Order{ID: orderID, UserID: uuid.New(), Status: entity.StatusPending}

	fx.orderRepo.EXPECT().
		FindByID(ctx, orderID).
		Return(stored, nil)

	order, err := fx.service.GetOrder(ctx, orderID, uuid.New(), entity.RoleAdmin)
	require.NoError(t, err)
	assert.Same(t, stored, order)
}

func TestOrderService_ListMyOrders(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	userID := uuid.New()
	stored := []*entity.Order{
		{ID: uuid.New(), UserID: userID},
		{ID: uuid.New(), UserID: userID},
	}

	fx.orderRepo.EXPECT().
		FindByUser(ctx, userID).
		Return(stored, nil)

	orders, err := fx.service.ListMyOrders(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, stored, orders)
}

func TestOrderService_MarkPaid_Success(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	orderID := uuid.New()
	stored := &entity.Order{
		ID:     orderID,
		UserID: uuid.New(),
		Status: entity.StatusPending,
		OrderItems: []entity.OrderItem{
			{ItemID: uuid.New(), Name: "Desk Lamp", Quantity: 1, Price: 40},
		},
	}

	fx.orderRepo.EXPECT().
		FindByID(ctx, orderID).
		Return(stored, nil)
	fx.orderRepo.EXPECT().
		Update(ctx, stored).
		Return(nil)
	fx.publisher.EXPECT().
		PublishOrderEvent(ctx, mock.AnythingOfType("*service.OrderEvent")).
		Return(nil)

	order, err := fx.service.MarkPaid(ctx, orderID, &usecase.MarkPaidInput{}, "buyer@example.com")
	require.NoError(t, err)

	assert.True(t, order.IsPaid)
	require.NotNil(t, order.PaidAt)
	require.NotNil(t, order.PaymentResult)
	assert.Equal(t, "manual", order.PaymentResult.ID)
	assert.Equal(t, "completed", order.PaymentResult.Status)
	assert.Equal(t, "buyer@example.com", order.PaymentResult.EmailAddress)
}

func TestOrderService_MarkPaid_EmptyBodyFallsBackToManualPayment(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	orderID := uuid.New()
	stored := &entity.Order{ID: orderID, UserID: uuid.New(), Status: entity.StatusPending}

	fx.orderRepo.EXPECT().
		FindByID(ctx, orderID).
		Return(stored, nil)
	fx.orderRepo.EXPECT().
		Update(ctx, stored).
		Return(nil)
	fx.publisher.EXPECT().
		PublishOrderEvent(ctx, mock.AnythingOfType("*service.OrderEvent")).
		Return(nil)

	// Paying without a body binds to a nil input; the order is still marked
	// paid with the manual payment id and the caller's email.
	order, err := fx.service.MarkPaid(ctx, orderID, nil, "admin@example.com")
	require.NoError(t, err)

	assert.True(t, order.IsPaid)
	require.NotNil(t, order.PaymentResult)
	assert.Equal(t, "manual", order.PaymentResult.ID)
	assert.Equal(t, "admin@example.com", order.PaymentResult.EmailAddress)
}

func TestOrderService_MarkPaid_UsesProvidedPaymentFields(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	orderID := uuid.New()
	stored := &entity.Order{ID: orderID, UserID: uuid.New(), Status: entity.StatusPending}

	fx.orderRepo.EXPECT().
		FindByID(ctx, orderID).
		Return(stored, nil)
	fx.orderRepo.EXPECT().
		Update(ctx, stored).
		Return(nil)
	fx.publisher.EXPECT().
		PublishOrderEvent(ctx, mock.AnythingOfType("*service.OrderEvent")).
		Return(nil)

	input := &usecase.MarkPaidInput{PaymentID: "pay_123", Email: "payer@example.com"}
	order, err := fx.service.MarkPaid(ctx, orderID, input, "buyer@example.com")
	require.NoError(t, err)

	assert.Equal(t, "pay_123", order.PaymentResult.ID)
	assert.Equal(t, "payer@example.com", order.PaymentResult.EmailAddress)
}

func TestOrderService_MarkDelivered_Success(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	orderID := uuid.New()
	stored := &entity.Order{ID: orderID, UserID: uuid.New(), Status: entity.StatusShipped}

	fx.orderRepo.EXPECT().
		FindByID(ctx, orderID).
		Return(stored, nil)
	fx.orderRepo.EXPECT().
		Update(ctx, stored).
		Return(nil)
	fx.publisher.EXPECT().
		PublishOrderEvent(ctx, mock.AnythingOfType("*service.OrderEvent")).
		Return(nil)

	order, err := fx.service.MarkDelivered(ctx, orderID)
	require.NoError(t, err)

	assert.True(t, order.IsDelivered)
	require.NotNil(t, order.DeliveredAt)
}

func TestOrderService_UpdateStatus_Shipped(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	orderID := uuid.New()
	stored := &entity.Order{ID: orderID, UserID: uuid.New(), Status: entity.StatusProcessing}

	fx.orderRepo.EXPECT().
		FindByID(ctx, orderID).
		Return(stored, nil)
	fx.orderRepo.EXPECT().
		Update(ctx, stored).
		Return(nil)
	fx.publisher.EXPECT().
		PublishOrderEvent(ctx, mock.AnythingOfType("*service.OrderEvent")).
		Return(nil)

	order, err := fx.service.UpdateStatus(ctx, orderID, &usecase.StatusUpdateInput{Status: "shipped"})
	require.NoError(t, err)

	assert.Equal(t, entity.StatusShipped, order.Status)
	assert.True(t, order.IsShipped)
	require.NotNil(t, order.ShippedAt)
}

func TestOrderService_UpdateStatus_EmptyBodyRejected(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	orderID := uuid.New()
	stored := &entity.Order{ID: orderID, UserID: uuid.New(), Status: entity.StatusProcessing}

	fx.orderRepo.EXPECT().
		FindByID(ctx, orderID).
		Return(stored, nil)

	_, err := fx.service.UpdateStatus(ctx, orderID, nil)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidStatus)
	assert.Equal(t, entity.StatusProcessing, stored.Status)
}
