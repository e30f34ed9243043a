package postgres

import (
	"context"

	"bazaar/internal/domain/entity"
	domainerrors "bazaar/internal/domain/errors"
	"bazaar/internal/domain/repository"
	"bazaar/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// itemRepository implements the repository.ItemRepository interface.
type itemRepository struct {
	db *gorm.DB
}

// NewItemRepository is the constructor for itemRepository.
func NewItemRepository(db *gorm.DB) repository.ItemRepository {
	return &itemRepository{
		db: db,
	}
}

// FindByID retrieves a single item by its unique ID.
func (repo *itemRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Item, error) {
	var itemM model.ItemModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&itemM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrItemNotFound
		}

		return nil, errors.Wrap(err, "failed to find item by ID")
	}

	return toItemDomain(&itemM), nil
}

// FindByIDs retrieves the items matching the given IDs. IDs without a
// matching row are simply absent from the result.
func (repo *itemRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Item, error) {
	if len(ids) == 0 {
		return []*entity.Item{}, nil
	}

	var itemMs []model.ItemModel

	if err := repo.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&itemMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find items by IDs")
	}

	items := make([]*entity.Item, 0, len(itemMs))
	for i := range itemMs {
		items = append(items, toItemDomain(&itemMs[i]))
	}

	return items, nil
}

// List retrieves all catalog items, newest first.
func (repo *itemRepository) List(ctx context.Context) ([]*entity.Item, error) {
	var itemMs []model.ItemModel

	if err := repo.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&itemMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list items")
	}

	items := make([]*entity.Item, 0, len(itemMs))
	for i := range itemMs {
		items = append(items, toItemDomain(&itemMs[i]))
	}

	return items, nil
}

// Create persists a new catalog item.
func (repo *itemRepository) Create(ctx context.Context, item *entity.Item) error {
	itemM := fromItemDomain(item)

	if err := repo.db.WithContext(ctx).Create(itemM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateSKU
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create item")
	}

	item.ID = itemM.ID
	item.CreatedAt = itemM.CreatedAt
	item.UpdatedAt = itemM.UpdatedAt

	return nil
}

// Update modifies an existing catalog item.
func (repo *itemRepository) Update(ctx context.Context, item *entity.Item) error {
	itemM := fromItemDomain(item)

	result := repo.db.WithContext(ctx).
		Model(&model.ItemModel{}).
		Where("id = ?", item.ID).
		Updates(map[string]any{
			"name":        itemM.Name,
			"sku":         itemM.SKU,
			"quantity":    itemM.Quantity,
			"price":       itemM.Price,
			"category":    itemM.Category,
			"description": itemM.Description,
			"image_url":   itemM.ImageURL,
		})
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return repository.ErrDuplicateSKU
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update item")
	}

	if result.RowsAffected == 0 {
		return repository.ErrItemNotFound
	}

	return nil
}

// Delete removes an item permanently.
func (repo *itemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.ItemModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete item")
	}

	if result.RowsAffected == 0 {
		return repository.ErrItemNotFound
	}

	return nil
}

// DecrementStock atomically subtracts quantity from the item's stock. The
// guard and the decrement are one UPDATE statement, so concurrent callers
// cannot drive the stored quantity below zero.
func (repo *itemRepository) DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ItemModel{}).
		Where("id = ? AND quantity >= ?", id, quantity).
		Update("quantity", gorm.Expr("quantity - ?", quantity))
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to decrement stock")
	}

	if result.RowsAffected == 0 {
		// Zero rows means either the item is gone or the stock guard failed.
		var itemM model.ItemModel
		if err := repo.db.WithContext(ctx).
			Select("id").
			Where("id = ?", id).
			First(&itemM).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return repository.ErrItemNotFound
			}

			return errors.Wrap(err, "failed to check item existence")
		}

		return repository.ErrInsufficientStock
	}

	return nil
}

func toItemDomain(data *model.ItemModel) *entity.Item {
	item := &entity.Item{
		ID:          data.ID,
		Name:        data.Name,
		Quantity:    data.Quantity,
		Price:       data.Price,
		Category:    data.Category,
		Description: data.Description,
		ImageURL:    data.ImageURL,
		CreatedBy:   data.CreatedBy,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
	if data.SKU != nil {
		item.SKU = *data.SKU
	}

	return item
}

func fromItemDomain(data *entity.Item) *model.ItemModel {
	itemM := &model.ItemModel{
		ID:          data.ID,
		Name:        data.Name,
		Quantity:    data.Quantity,
		Price:       data.Price,
		Category:    data.Category,
		Description: data.Description,
		ImageURL:    data.ImageURL,
		CreatedBy:   data.CreatedBy,
	}
	if data.SKU != "" {
		sku := data.SKU
		itemM.SKU = &sku
	}

	return itemM
}
