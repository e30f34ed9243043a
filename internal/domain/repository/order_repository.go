package repository

import (
	"context"
	"errors"

	"bazaar/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrOrderNotFound is returned when an order cannot be resolved.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository defines the operations for order persistence. Orders are
// created once and mutated only through status transitions; they are never
// deleted through normal flow.
type OrderRepository interface {
	// Create persists a new order together with its line snapshots.
	Create(ctx context.Context, order *entity.Order) error

	// FindByID retrieves a single order with its owner summarized.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// FindByUser retrieves all orders owned by the user, newest first.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)

	// FindAll retrieves all orders, newest first, owners summarized.
	FindAll(ctx context.Context) ([]*entity.Order, error)

	// Update persists the mutable lifecycle fields of an existing order.
	Update(ctx context.Context, order *entity.Order) error
}
