package usecase

import (
	"context"

	"bazaar/internal/domain/entity"

	"github.com/google/uuid"
)

// CartUsecase defines the shopping cart use cases. Every caller operates on
// their own cart, which is created lazily on first access.
type CartUsecase interface {
	// GetCart returns the caller's cart, creating and persisting an empty
	// one when absent. Lines are returned populated with live catalog items.
	GetCart(ctx context.Context, userID uuid.UUID) (*entity.Cart, error)

	// AddItem merges quantity units of the item into the cart, snapshotting
	// price, name and image on first add. Fails when the item is unknown or
	// the requested quantity exceeds current stock.
	AddItem(ctx context.Context, userID, itemID uuid.UUID, quantity int) (*entity.Cart, error)

	// UpdateItem replaces the quantity of an existing line. Quantities below
	// one are rejected; removal is RemoveItem's job.
	UpdateItem(ctx context.Context, userID, itemID uuid.UUID, quantity int) (*entity.Cart, error)

	// RemoveItem drops the line holding the item; removing an absent item is
	// not an error.
	RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*entity.Cart, error)

	// ClearCart empties the cart and zeroes its total. Fails when the cart
	// was never created.
	ClearCart(ctx context.Context, userID uuid.UUID) error
}
