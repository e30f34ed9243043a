package usecase

import (
	"context"

	"bazaar/internal/domain/entity"

	"github.com/google/uuid"
)

// OrderItemInput is one requested order line. Item is the client's item
// reference; name, price and image are advisory hints that fall back to the
// catalog values during processing. A nil quantity defaults to one.
type OrderItemInput struct {
	Item     string   `json:"item"`
	Quantity *int     `json:"quantity"`
	Price    *float64 `json:"price"`
	Name     string   `json:"name"`
	ImageURL string   `json:"imageUrl"`
}

// ShippingAddressInput is the destination supplied with an order request.
type ShippingAddressInput struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// CreateOrderInput is the order placement request. The price-breakdown
// fields are advisory only; the persisted breakdown is always recomputed
// from the processed lines.
type CreateOrderInput struct {
	OrderItems      []OrderItemInput     `json:"orderItems"`
	ShippingAddress ShippingAddressInput `json:"shippingAddress"`
	ItemsPrice      float64              `json:"itemsPrice"`
	TaxPrice        float64              `json:"taxPrice"`
	ShippingPrice   float64              `json:"shippingPrice"`
	TotalPrice      float64              `json:"totalPrice"`
	Email           string               `json:"email"`
}

// StatusUpdateInput is the admin request driving the status state machine.
type StatusUpdateInput struct {
	Status string `json:"status"`
	entity.StatusUpdate
}

// MarkPaidInput carries the optional payment fields of the dedicated
// mark-paid operation.
type MarkPaidInput struct {
	PaymentID string `json:"id"`
	Email     string `json:"email"`
}

// OrderUsecase defines the order workflow: placement against live stock,
// retrieval, and the status lifecycle.
type OrderUsecase interface {
	// CreateOrder validates the request against the catalog, persists the
	// order, decrements stock and clears the caller's cart in one
	// transaction, then returns the created order.
	CreateOrder(ctx context.Context, callerID uuid.UUID, input *CreateOrderInput) (*entity.Order, error)

	// GetOrder returns one order; only the owner or an admin may read it.
	GetOrder(ctx context.Context, id, callerID uuid.UUID, callerRole entity.Role) (*entity.Order, error)

	// ListMyOrders returns the caller's orders, newest first.
	ListMyOrders(ctx context.Context, callerID uuid.UUID) ([]*entity.Order, error)

	// ListOrders returns all orders, newest first, owners summarized.
	ListOrders(ctx context.Context) ([]*entity.Order, error)

	// MarkPaid marks an order paid with a fixed completed payment result.
	// Fails with a conflict when the order is already paid.
	MarkPaid(ctx context.Context, id uuid.UUID, input *MarkPaidInput, callerEmail string) (*entity.Order, error)

	// MarkDelivered unconditionally marks an order delivered.
	MarkDelivered(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// UpdateStatus drives the status state machine.
	UpdateStatus(ctx context.Context, id uuid.UUID, input *StatusUpdateInput) (*entity.Order, error)
}
