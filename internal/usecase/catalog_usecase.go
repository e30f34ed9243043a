// Package usecase defines the application's use case interfaces and their
// input/output DTOs. Handlers depend on these interfaces, implementations
// live in the impl subpackage.
package usecase

import (
	"context"

	"bazaar/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateItemInput carries the fields of a new catalog item.
type CreateItemInput struct {
	Name        string  `json:"name" validate:"required"`
	SKU         string  `json:"sku"`
	Quantity    int     `json:"quantity" validate:"gte=0"`
	Price       float64 `json:"price" validate:"gte=0"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	ImageURL    string  `json:"imageUrl"`
}

// UpdateItemInput carries a partial update; nil fields are left untouched.
type UpdateItemInput struct {
	Name        *string  `json:"name"`
	SKU         *string  `json:"sku"`
	Quantity    *int     `json:"quantity"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
	Description *string  `json:"description"`
	ImageURL    *string  `json:"imageUrl"`
}

// CatalogUsecase defines the catalog management use cases.
type CatalogUsecase interface {
	// ListItems returns all catalog items, newest first.
	ListItems(ctx context.Context) ([]*entity.Item, error)

	// GetItem returns a single item by ID.
	GetItem(ctx context.Context, id uuid.UUID) (*entity.Item, error)

	// CreateItem validates and persists a new item on behalf of an admin.
	CreateItem(ctx context.Context, input *CreateItemInput, createdBy uuid.UUID) (*entity.Item, error)

	// UpdateItem applies a partial update to an existing item.
	UpdateItem(ctx context.Context, id uuid.UUID, input *UpdateItemInput) (*entity.Item, error)

	// DeleteItem removes an item permanently.
	DeleteItem(ctx context.Context, id uuid.UUID) error
}
