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

// cartRepository implements the repository.CartRepository interface.
type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository is the constructor for cartRepository.
func NewCartRepository(db *gorm.DB) repository.CartRepository {
	return &cartRepository{
		db: db,
	}
}

// FindByUser retrieves the cart owned by the given user, lines included.
func (repo *cartRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*entity.Cart, error) {
	var cartM model.CartModel

	if err := repo.db.WithContext(ctx).
		Preload("Lines").
		Where("user_id = ?", userID).
		First(&cartM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCartNotFound
		}

		return nil, errors.Wrap(err, "failed to find cart by user")
	}

	return toCartDomain(&cartM), nil
}

// Save persists the cart, creating it when it does not exist yet and
// replacing its lines and total otherwise.
func (repo *cartRepository) Save(ctx context.Context, cart *entity.Cart) error {
	cartM := fromCartDomain(cart)

	if cart.ID == uuid.Nil {
		if err := repo.db.WithContext(ctx).Create(cartM).Error; err != nil {
			return domainerrors.NewDatabaseExecuteError(err, "failed to create cart")
		}

		cart.ID = cartM.ID
		cart.CreatedAt = cartM.CreatedAt
		cart.UpdatedAt = cartM.UpdatedAt

		return nil
	}

	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.CartModel{}).
			Where("id = ?", cart.ID).
			Update("total", cartM.Total)
		if result.Error != nil {
			return errors.Wrap(result.Error, "failed to update cart")
		}
		if result.RowsAffected == 0 {
			return repository.ErrCartNotFound
		}

		// Replace the lines wholesale; the entity is the source of truth.
		if err := tx.Where("cart_id = ?", cart.ID).
			Delete(&model.CartLineModel{}).Error; err != nil {
			return errors.Wrap(err, "failed to clear cart lines")
		}

		if len(cartM.Lines) == 0 {
			return nil
		}

		for i := range cartM.Lines {
			cartM.Lines[i].CartID = cart.ID
		}

		if err := tx.Create(&cartM.Lines).Error; err != nil {
			return errors.Wrap(err, "failed to insert cart lines")
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			return err
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to save cart")
	}

	return nil
}

func toCartDomain(data *model.CartModel) *entity.Cart {
	lines := make([]entity.CartLine, 0, len(data.Lines))
	for i := range data.Lines {
		lines = append(lines, entity.CartLine{
			ItemID:   data.Lines[i].ItemID,
			Quantity: data.Lines[i].Quantity,
			Price:    data.Lines[i].Price,
			Name:     data.Lines[i].Name,
			ImageURL: data.Lines[i].ImageURL,
		})
	}

	return &entity.Cart{
		ID:        data.ID,
		UserID:    data.UserID,
		Items:     lines,
		Total:     data.Total,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

func fromCartDomain(data *entity.Cart) *model.CartModel {
	lines := make([]model.CartLineModel, 0, len(data.Items))
	for i := range data.Items {
		lines = append(lines, model.CartLineModel{
			CartID:   data.ID,
			ItemID:   data.Items[i].ItemID,
			Quantity: data.Items[i].Quantity,
			Price:    data.Items[i].Price,
			Name:     data.Items[i].Name,
			ImageURL: data.Items[i].ImageURL,
		})
	}

	return &model.CartModel{
		ID:     data.ID,
		UserID: data.UserID,
		Total:  data.Total,
		Lines:  lines,
	}
}
