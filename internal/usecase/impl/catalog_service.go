package impl

import (
	"context"
	"log/slog"

	"bazaar/internal/domain/entity"
	domainerrors "bazaar/internal/domain/errors"
	"bazaar/internal/domain/repository"
	"bazaar/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type catalogService struct {
	itemRepo repository.ItemRepository
	logger   *slog.Logger
}

// CatalogServiceParams holds dependencies for CatalogService, injected by Fx.
type CatalogServiceParams struct {
	fx.In

	ItemRepo repository.ItemRepository
	Logger   *slog.Logger
}

// NewCatalogService creates the catalog management service.
func NewCatalogService(params CatalogServiceParams) usecase.CatalogUsecase {
	return &catalogService{
		itemRepo: params.ItemRepo,
		logger:   params.Logger,
	}
}

func (s *catalogService) ListItems(ctx context.Context) ([]*entity.Item, error) {
	items, err := s.itemRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list items")
	}

	return items, nil
}

func (s *catalogService) GetItem(ctx context.Context, id uuid.UUID) (*entity.Item, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return nil, domainerrors.ErrItemNotFound
		}

		return nil, errors.Wrap(err, "failed to find item")
	}

	return item, nil
}

func (s *catalogService) CreateItem(ctx context.Context, input *usecase.CreateItemInput, createdBy uuid.UUID) (*entity.Item, error) {
	item := &entity.Item{
		ID:          uuid.New(),
		Name:        input.Name,
		SKU:         input.SKU,
		Quantity:    input.Quantity,
		Price:       input.Price,
		Category:    input.Category,
		Description: input.Description,
		ImageURL:    input.ImageURL,
	}
	if createdBy != uuid.Nil {
		item.CreatedBy = &createdBy
	}
	item.Normalize()

	if err := s.itemRepo.Create(ctx, item); err != nil {
		if errors.Is(err, repository.ErrDuplicateSKU) {
			return nil, domainerrors.ErrDuplicateSKU
		}

		return nil, errors.Wrap(err, "failed to create item")
	}

	return item, nil
}

func (s *catalogService) UpdateItem(ctx context.Context, id uuid.UUID, input *usecase.UpdateItemInput) (*entity.Item, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return nil, domainerrors.ErrItemNotFound
		}

		return nil, errors.Wrap(err, "failed to find item")
	}

	if input.Name != nil {
		item.Name = *input.Name
	}
	if input.SKU != nil {
		item.SKU = *input.SKU
	}
	if input.Quantity != nil {
		item.Quantity = *input.Quantity
	}
	if input.Price != nil {
		item.Price = *input.Price
	}
	if input.Category != nil {
		item.Category = *input.Category
	}
	if input.Description != nil {
		item.Description = *input.Description
	}
	if input.ImageURL != nil {
		item.ImageURL = *input.ImageURL
	}
	item.Normalize()

	if err := s.itemRepo.Update(ctx, item); err != nil {
		if errors.Is(err, repository.ErrDuplicateSKU) {
			return nil, domainerrors.ErrDuplicateSKU
		}

		return nil, errors.Wrap(err, "failed to update item")
	}

	return item, nil
}

func (s *catalogService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	if err := s.itemRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return domainerrors.ErrItemNotFound
		}

		return errors.Wrap(err, "failed to delete item")
	}

	return nil
}
