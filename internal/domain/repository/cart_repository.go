package repository

import (
	"context"
	"errors"

	"bazaar/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrCartNotFound is returned when no cart exists for a user.
var ErrCartNotFound = errors.New("cart not found")

// CartRepository defines the operations for cart persistence. Carts are
// keyed by the owning user; one cart per user.
type CartRepository interface {
	// FindByUser retrieves the cart owned by the given user.
	FindByUser(ctx context.Context, userID uuid.UUID) (*entity.Cart, error)

	// Save persists the cart, creating it when it does not exist yet and
	// replacing its lines and total otherwise. The caller is responsible for
	// recalculating the total before saving.
	Save(ctx context.Context, cart *entity.Cart) error
}
