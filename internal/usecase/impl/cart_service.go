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

type cartService struct {
	cartRepo repository.CartRepository
	itemRepo repository.ItemRepository
	logger   *slog.Logger
}

// CartServiceParams holds dependencies for CartService, injected by Fx.
type CartServiceParams struct {
	fx.In

	CartRepo repository.CartRepository
	ItemRepo repository.ItemRepository
	Logger   *slog.Logger
}

// NewCartService creates the shopping cart service.
func NewCartService(params CartServiceParams) usecase.CartUsecase {
	return &cartService{
		cartRepo: params.CartRepo,
		itemRepo: params.ItemRepo,
		logger:   params.Logger,
	}
}

// GetCart returns the caller's cart, creating an empty one on first access.
// Lines come back populated with the current catalog items so clients see
// live stock and pricing next to the snapshotted line price.
func (s *cartService) GetCart(ctx context.Context, userID uuid.UUID) (*entity.Cart, error) {
	cart, err := s.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.populate(ctx, cart); err != nil {
		return nil, err
	}

	return cart, nil
}

// AddItem merges quantity units of the item into the cart. The line price,
// name and image are snapshotted from the catalog on first add and kept on
// merges.
func (s *cartService) AddItem(ctx context.Context, userID, itemID uuid.UUID, quantity int) (*entity.Cart, error) {
	if quantity < 1 {
		return nil, domainerrors.NewInvalidQuantity(quantity)
	}

	item, err := s.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return nil, domainerrors.ErrItemNotFound
		}

		return nil, errors.Wrap(err, "failed to find item")
	}

	cart, err := s.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	// The check covers only the requested increment; the merged line total
	// is re-validated against live stock at order time.
	if item.Quantity < quantity {
		return nil, domainerrors.NewCartStockExceeded(item.Quantity)
	}

	cart.AddLine(item, quantity)
	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, errors.Wrap(err, "failed to save cart")
	}

	if err := s.populate(ctx, cart); err != nil {
		return nil, err
	}

	return cart, nil
}

// UpdateItem replaces the quantity of an existing line. Quantities below one
// are rejected; dropping a line is RemoveItem's job.
func (s *cartService) UpdateItem(ctx context.Context, userID, itemID uuid.UUID, quantity int) (*entity.Cart, error) {
	if quantity < 1 {
		return nil, domainerrors.NewInvalidQuantity(quantity)
	}

	item, err := s.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return nil, domainerrors.ErrItemNotFound
		}

		return nil, errors.Wrap(err, "failed to find item")
	}
	if item.Quantity < quantity {
		return nil, domainerrors.NewCartStockExceeded(item.Quantity)
	}

	cart, err := s.findCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !cart.SetLineQuantity(itemID, quantity) {
		return nil, domainerrors.ErrCartLineNotFound
	}

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, errors.Wrap(err, "failed to save cart")
	}

	if err := s.populate(ctx, cart); err != nil {
		return nil, err
	}

	return cart, nil
}

// RemoveItem drops the line holding the item. Removing an item that is not
// in the cart succeeds without change.
func (s *cartService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*entity.Cart, error) {
	cart, err := s.findCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart.RemoveLine(itemID)
	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, errors.Wrap(err, "failed to save cart")
	}

	if err := s.populate(ctx, cart); err != nil {
		return nil, err
	}

	return cart, nil
}

// ClearCart empties the cart and zeroes its total. Fails when the cart was
// never created.
func (s *cartService) ClearCart(ctx context.Context, userID uuid.UUID) error {
	cart, err := s.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			return domainerrors.ErrCartNotFound
		}

		return errors.Wrap(err, "failed to find cart")
	}

	cart.Clear()
	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return errors.Wrap(err, "failed to save cart")
	}

	return nil
}

func (s *cartService) loadOrCreate(ctx context.Context, userID uuid.UUID) (*entity.Cart, error) {
	cart, err := s.cartRepo.FindByUser(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, repository.ErrCartNotFound) {
		return nil, errors.Wrap(err, "failed to find cart")
	}

	cart = entity.NewCart(userID)
	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, errors.Wrap(err, "failed to create cart")
	}

	return cart, nil
}

func (s *cartService) findCart(ctx context.Context, userID uuid.UUID) (*entity.Cart, error) {
	cart, err := s.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			return nil, domainerrors.ErrCartNotFound
		}

		return nil, errors.Wrap(err, "failed to find cart")
	}

	return cart, nil
}

// populate attaches the current catalog item to each line. Lines whose item
// has been deleted from the catalog keep their snapshot with no details.
func (s *cartService) populate(ctx context.Context, cart *entity.Cart) error {
	if len(cart.Items) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(cart.Items))
	for i := range cart.Items {
		ids = append(ids, cart.Items[i].ItemID)
	}

	items, err := s.itemRepo.FindByIDs(ctx, ids)
	if err != nil {
		return errors.Wrap(err, "failed to populate cart items")
	}

	byID := make(map[uuid.UUID]*entity.Item, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}
	for i := range cart.Items {
		cart.Items[i].Item = byID[cart.Items[i].ItemID]
	}

	return nil
}
