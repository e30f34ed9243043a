package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "bazaar/internal/delivery/context"
	"bazaar/internal/domain/constants"
	"bazaar/internal/domain/entity"
	domainerrors "bazaar/internal/domain/errors"
	"bazaar/internal/domain/repository"
	"bazaar/internal/domain/service"
	"bazaar/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"golang.org/x/sync/errgroup"
)

// manualPaymentID is recorded when the admin marks an order paid without a
// gateway payment reference.
const manualPaymentID = "manual"

type orderService struct {
	orderRepo repository.OrderRepository
	itemRepo  repository.ItemRepository
	cartRepo  repository.CartRepository
	txManager repository.TransactionManager
	publisher service.EventPublisher
	receipts  service.ReceiptSender
	logger    *slog.Logger
}

// OrderServiceParams holds dependencies for OrderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	OrderRepo repository.OrderRepository
	ItemRepo  repository.ItemRepository
	CartRepo  repository.CartRepository
	TxManager repository.TransactionManager
	Publisher service.EventPublisher
	Receipts  service.ReceiptSender
	Logger    *slog.Logger
}

// NewOrderService creates the order workflow service.
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		orderRepo: params.OrderRepo,
		itemRepo:  params.ItemRepo,
		cartRepo:  params.CartRepo,
		txManager: params.TxManager,
		publisher: params.Publisher,
		receipts:  params.Receipts,
		logger:    params.Logger,
	}
}

// CreateOrder runs the placement workflow: validate the request against live
// stock with no side effects, then persist the order, decrement stock and
// clear the caller's cart inside one transaction. Any failure before commit
// leaves no partial state behind.
func (s *orderService) CreateOrder(ctx context.Context, callerID uuid.UUID, input *usecase.CreateOrderInput) (*entity.Order, error) {
	if callerID == uuid.Nil {
		return nil, domainerrors.ErrUnauthenticated
	}
	if input == nil {
		input = &usecase.CreateOrderInput{}
	}

	address := entity.ShippingAddress(input.ShippingAddress)
	if !address.Complete() {
		return nil, domainerrors.ErrShippingIncomplete
	}
	if address.Country == "" {
		address.Country = entity.DefaultCountry
	}

	if len(input.OrderItems) == 0 {
		return nil, domainerrors.ErrNoOrderItems
	}

	// Per-line validation fans out concurrently and is read-only; all lines
	// must pass before anything is persisted.
	lines := make([]entity.OrderItem, len(input.OrderItems))
	g, gctx := errgroup.WithContext(ctx)
	for i := range input.OrderItems {
		g.Go(func() error {
			line, err := s.processLine(gctx, &input.OrderItems[i])
			if err != nil {
				return err
			}
			lines[i] = *line

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	email := address.Email
	if email == "" {
		email = input.Email
	}

	order := &entity.Order{
		ID:              uuid.New(),
		UserID:          callerID,
		OrderItems:      lines,
		ShippingAddress: address,
		Email:           email,
		ItemsPrice:      input.ItemsPrice,
		TaxPrice:        input.TaxPrice,
		ShippingPrice:   input.ShippingPrice,
		TotalPrice:      input.TotalPrice,
		Status:          entity.StatusPending,
		PaymentMethod:   entity.DefaultPaymentMethod,
	}
	if !order.ValidEmail() {
		return nil, domainerrors.ErrInvalidEmail
	}

	// The client-supplied breakdown above is advisory only; the persisted
	// numbers are always derived from the processed lines.
	order.RecalculatePrices()

	err := s.txManager.Execute(ctx, func(f repository.RepositoryFactory) error {
		if err := f.NewOrderRepository().Create(ctx, order); err != nil {
			return errors.Wrap(err, "failed to create order")
		}

		itemRepo := f.NewItemRepository()
		for _, line := range lines {
			if err := itemRepo.DecrementStock(ctx, line.ItemID, line.Quantity); err != nil {
				if errors.Is(err, repository.ErrInsufficientStock) {
					available := 0
					if item, ferr := itemRepo.FindByID(ctx, line.ItemID); ferr == nil {
						available = item.Quantity
					}

					return domainerrors.NewInsufficientStock(line.Name, available)
				}

				return errors.Wrap(err, "failed to decrement stock")
			}
		}

		cartRepo := f.NewCartRepository()
		cart, err := cartRepo.FindByUser(ctx, callerID)
		if err != nil {
			if errors.Is(err, repository.ErrCartNotFound) {
				return nil
			}

			return errors.Wrap(err, "failed to load cart for clearing")
		}
		cart.Clear()
		if err := cartRepo.Save(ctx, cart); err != nil {
			return errors.Wrap(err, "failed to clear cart")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishOrderEvent(ctx, constants.EventOrderCreated, order)
	if err := s.receipts.SendOrderReceipt(ctx, order); err != nil {
		s.logger.Warn("Failed to send order receipt",
			slog.String("order_id", order.ID.String()),
			slog.Any("error", err),
		)
	}

	return order, nil
}

// processLine resolves one requested line against the catalog and produces
// the immutable order snapshot for it.
func (s *orderService) processLine(ctx context.Context, in *usecase.OrderItemInput) (*entity.OrderItem, error) {
	if in.Item == "" {
		return nil, domainerrors.ErrOrderItemMissingRef
	}

	itemID, err := uuid.Parse(in.Item)
	if err != nil {
		return nil, domainerrors.NewProductNotFound(in.Item)
	}

	dbItem, err := s.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return nil, domainerrors.NewProductNotFound(in.Item)
		}

		return nil, errors.Wrap(err, "failed to resolve order item")
	}

	quantity := 1
	if in.Quantity != nil {
		quantity = *in.Quantity
		if quantity < 1 {
			return nil, domainerrors.NewInvalidQuantity(quantity)
		}
	}

	if dbItem.Quantity < quantity {
		return nil, domainerrors.NewInsufficientStock(dbItem.Name, dbItem.Quantity)
	}

	name := in.Name
	if name == "" {
		name = dbItem.Name
	}

	price := 0.0
	if in.Price != nil {
		price = *in.Price
	}
	if price == 0 {
		price = dbItem.Price
	}

	image := in.ImageURL
	if image == "" {
		image = dbItem.ImageURL
	}

	return &entity.OrderItem{
		ItemID:   itemID,
		Name:     name,
		Quantity: quantity,
		Price:    price,
		ImageURL: image,
	}, nil
}

// GetOrder returns one order, enforcing owner-or-admin access.
func (s *orderService) GetOrder(ctx context.Context, id, callerID uuid.UUID, callerRole entity.Role) (*entity.Order, error) {
	order, err := s.findOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if order.UserID != callerID && callerRole != entity.RoleAdmin {
		return nil, domainerrors.ErrOrderAccessDenied
	}

	return order, nil
}

// ListMyOrders returns the caller's orders, newest first.
func (s *orderService) ListMyOrders(ctx context.Context, callerID uuid.UUID) ([]*entity.Order, error) {
	orders, err := s.orderRepo.FindByUser(ctx, callerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders by user")
	}

	return orders, nil
}

// ListOrders returns all orders, newest first.
func (s *orderService) ListOrders(ctx context.Context) ([]*entity.Order, error) {
	orders, err := s.orderRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return orders, nil
}

// MarkPaid marks an order paid with a fixed completed payment result. A
// second call conflicts and leaves paidAt unchanged. A nil input is valid;
// the payment id and email then fall back to the manual defaults.
func (s *orderService) MarkPaid(ctx context.Context, id uuid.UUID, input *usecase.MarkPaidInput, callerEmail string) (*entity.Order, error) {
	if input == nil {
		input = &usecase.MarkPaidInput{}
	}

	order, err := s.findOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if order.IsPaid {
		return nil, domainerrors.ErrOrderAlreadyPaid
	}

	now := time.Now()
	paymentID := input.PaymentID
	if paymentID == "" {
		paymentID = manualPaymentID
	}
	email := input.Email
	if email == "" {
		email = callerEmail
	}

	order.IsPaid = true
	order.PaidAt = &now
	order.PaymentResult = &entity.PaymentResult{
		ID:           paymentID,
		Status:       "completed",
		UpdateTime:   now.UTC().Format(time.RFC3339),
		EmailAddress: email,
	}

	if err := s.saveOrder(ctx, order); err != nil {
		return nil, err
	}

	s.publishOrderEvent(ctx, constants.EventOrderStatusChanged, order)

	return order, nil
}

// MarkDelivered unconditionally marks an order delivered; there is no guard
// against re-delivery.
func (s *orderService) MarkDelivered(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := s.findOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	order.IsDelivered = true
	order.DeliveredAt = &now

	if err := s.saveOrder(ctx, order); err != nil {
		return nil, err
	}

	s.publishOrderEvent(ctx, constants.EventOrderStatusChanged, order)

	return order, nil
}

// UpdateStatus drives the status state machine. An unrecognized status value
// fails without touching the order.
func (s *orderService) UpdateStatus(ctx context.Context, id uuid.UUID, input *usecase.StatusUpdateInput) (*entity.Order, error) {
	if input == nil {
		input = &usecase.StatusUpdateInput{}
	}

	order, err := s.findOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := order.ApplyStatus(input.Status, input.StatusUpdate, time.Now()); err != nil {
		return nil, domainerrors.ErrInvalidStatus
	}

	if err := s.saveOrder(ctx, order); err != nil {
		return nil, err
	}

	s.publishOrderEvent(ctx, constants.EventOrderStatusChanged, order)

	return order, nil
}

func (s *orderService) findOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order")
	}

	return order, nil
}

// saveOrder recomputes the price breakdown and persists the order. The
// recompute runs on every save; lines are immutable after creation, so it is
// idempotent for status transitions.
func (s *orderService) saveOrder(ctx context.Context, order *entity.Order) error {
	order.RecalculatePrices()
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return errors.Wrap(err, "failed to update order")
	}

	return nil
}

func (s *orderService) publishOrderEvent(ctx context.Context, eventType string, order *entity.Order) {
	event := &service.OrderEvent{
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		EventType:  eventType,
		OrderID:    order.ID.String(),
		UserID:     order.UserID.String(),
		Status:     order.Status.String(),
		TotalPrice: order.TotalPrice,
		OccurredAt: time.Now(),
	}
	if err := s.publisher.PublishOrderEvent(ctx, event); err != nil {
		s.logger.Warn("Failed to publish order event",
			slog.String("event_type", eventType),
			slog.String("order_id", order.ID.String()),
			slog.Any("error", err),
		)
	}
}
