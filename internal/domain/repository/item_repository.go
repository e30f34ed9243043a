// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"bazaar/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrItemNotFound is a domain-specific error returned when a catalog item is not found.
var ErrItemNotFound = errors.New("item not found")

// ErrInsufficientStock is returned by DecrementStock when the decrement
// would push the stored quantity below zero. No mutation happens in that case.
var ErrInsufficientStock = errors.New("insufficient stock")

// ErrDuplicateSKU is returned when a create or update collides with an
// existing SKU.
var ErrDuplicateSKU = errors.New("duplicate sku")

// ItemRepository defines the standard operations for catalog persistence.
type ItemRepository interface {
	// FindByID retrieves a single item by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Item, error)

	// FindByIDs retrieves the items matching the given IDs. Missing IDs are
	// simply absent from the result.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Item, error)

	// List retrieves all catalog items, newest first.
	List(ctx context.Context) ([]*entity.Item, error)

	// Create persists a new item.
	Create(ctx context.Context, item *entity.Item) error

	// Update modifies an existing item.
	Update(ctx context.Context, item *entity.Item) error

	// Delete removes an item permanently.
	Delete(ctx context.Context, id uuid.UUID) error

	// DecrementStock atomically subtracts quantity from the item's stock,
	// failing with ErrInsufficientStock when the result would be negative.
	// The check and the decrement are one statement, so concurrent orders
	// cannot oversell.
	DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error
}
