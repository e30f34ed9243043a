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

// orderRepository implements the repository.OrderRepository interface.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{
		db: db,
	}
}

// Create persists a new order together with its line snapshots.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	order.ID = orderM.ID
	order.CreatedAt = orderM.CreatedAt
	order.UpdatedAt = orderM.UpdatedAt

	return nil
}

// FindByID retrieves a single order with its lines and owner summarized.
func (repo *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var orderM model.OrderModel

	if err := repo.db.WithContext(ctx).
		Preload("Items").
		Preload("User").
		Where("id = ?", id).
		First(&orderM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by ID")
	}

	return toOrderDomain(&orderM), nil
}

// FindByUser retrieves all orders owned by the user, newest first.
func (repo *orderRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	var orderMs []model.OrderModel

	if err := repo.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orderMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find orders by user")
	}

	orders := make([]*entity.Order, 0, len(orderMs))
	for i := range orderMs {
		orders = append(orders, toOrderDomain(&orderMs[i]))
	}

	return orders, nil
}

// FindAll retrieves all orders, newest first, owners summarized.
func (repo *orderRepository) FindAll(ctx context.Context) ([]*entity.Order, error) {
	var orderMs []model.OrderModel

	if err := repo.db.WithContext(ctx).
		Preload("Items").
		Preload("User").
		Order("created_at DESC").
		Find(&orderMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find all orders")
	}

	orders := make([]*entity.Order, 0, len(orderMs))
	for i := range orderMs {
		orders = append(orders, toOrderDomain(&orderMs[i]))
	}

	return orders, nil
}

// Update persists the mutable lifecycle fields of an existing order. Line
// snapshots are immutable and left untouched.
func (repo *orderRepository) Update(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ?", order.ID).
		Updates(map[string]any{
			"items_price":         orderM.ItemsPrice,
			"tax_price":           orderM.TaxPrice,
			"shipping_price":      orderM.ShippingPrice,
			"total_price":         orderM.TotalPrice,
			"status":              orderM.Status,
			"is_paid":             orderM.IsPaid,
			"paid_at":             orderM.PaidAt,
			"is_shipped":          orderM.IsShipped,
			"shipped_at":          orderM.ShippedAt,
			"is_delivered":        orderM.IsDelivered,
			"delivered_at":        orderM.DeliveredAt,
			"is_cancelled":        orderM.IsCancelled,
			"cancelled_at":        orderM.CancelledAt,
			"payment_method":      orderM.PaymentMethod,
			"payment_id":          orderM.PaymentID,
			"payment_status":      orderM.PaymentStatus,
			"payment_update_time": orderM.PaymentUpdateTime,
			"payment_email":       orderM.PaymentEmail,
			"cancellation_reason": orderM.CancellationReason,
			"refunded_at":         orderM.RefundedAt,
			"refund_reason":       orderM.RefundReason,
			"tracking_number":     orderM.TrackingNumber,
			"carrier":             orderM.Carrier,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update order")
	}

	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

func toOrderDomain(data *model.OrderModel) *entity.Order {
	items := make([]entity.OrderItem, 0, len(data.Items))
	for i := range data.Items {
		items = append(items, entity.OrderItem{
			ItemID:   data.Items[i].ItemID,
			Name:     data.Items[i].Name,
			Quantity: data.Items[i].Quantity,
			Price:    data.Items[i].Price,
			ImageURL: data.Items[i].ImageURL,
		})
	}

	order := &entity.Order{
		ID:         data.ID,
		UserID:     data.UserID,
		OrderItems: items,
		ShippingAddress: entity.ShippingAddress{
			FirstName:  data.ShippingFirstName,
			LastName:   data.ShippingLastName,
			Email:      data.ShippingEmail,
			Address:    data.ShippingAddress,
			City:       data.ShippingCity,
			PostalCode: data.ShippingPostalCode,
			Country:    data.ShippingCountry,
		},
		Email:              data.Email,
		ItemsPrice:         data.ItemsPrice,
		TaxPrice:           data.TaxPrice,
		ShippingPrice:      data.ShippingPrice,
		TotalPrice:         data.TotalPrice,
		Status:             entity.OrderStatus(data.Status),
		IsPaid:             data.IsPaid,
		PaidAt:             data.PaidAt,
		IsShipped:          data.IsShipped,
		ShippedAt:          data.ShippedAt,
		IsDelivered:        data.IsDelivered,
		DeliveredAt:        data.DeliveredAt,
		IsCancelled:        data.IsCancelled,
		CancelledAt:        data.CancelledAt,
		PaymentMethod:      data.PaymentMethod,
		CancellationReason: data.CancellationReason,
		RefundedAt:         data.RefundedAt,
		RefundReason:       data.RefundReason,
		TrackingNumber:     data.TrackingNumber,
		Carrier:            data.Carrier,
		CreatedAt:          data.CreatedAt,
		UpdatedAt:          data.UpdatedAt,
	}

	if data.User != nil {
		order.User = toUserDomain(data.User)
	}

	if data.PaymentID != "" || data.PaymentStatus != "" {
		order.PaymentResult = &entity.PaymentResult{
			ID:           data.PaymentID,
			Status:       data.PaymentStatus,
			UpdateTime:   data.PaymentUpdateTime,
			EmailAddress: data.PaymentEmail,
		}
	}

	return order
}

func fromOrderDomain(data *entity.Order) *model.OrderModel {
	items := make([]model.OrderItemModel, 0, len(data.OrderItems))
	for i := range data.OrderItems {
		items = append(items, model.OrderItemModel{
			OrderID:  data.ID,
			ItemID:   data.OrderItems[i].ItemID,
			Name:     data.OrderItems[i].Name,
			Quantity: data.OrderItems[i].Quantity,
			Price:    data.OrderItems[i].Price,
			ImageURL: data.OrderItems[i].ImageURL,
		})
	}

	orderM := &model.OrderModel{
		ID:                 data.ID,
		UserID:             data.UserID,
		Email:              data.Email,
		Items:              items,
		ShippingFirstName:  data.ShippingAddress.FirstName,
		ShippingLastName:   data.ShippingAddress.LastName,
		ShippingEmail:      data.ShippingAddress.Email,
		ShippingAddress:    data.ShippingAddress.Address,
		ShippingCity:       data.ShippingAddress.City,
		ShippingPostalCode: data.ShippingAddress.PostalCode,
		ShippingCountry:    data.ShippingAddress.Country,
		ItemsPrice:         data.ItemsPrice,
		TaxPrice:           data.TaxPrice,
		ShippingPrice:      data.ShippingPrice,
		TotalPrice:         data.TotalPrice,
		Status:             data.Status.String(),
		IsPaid:             data.IsPaid,
		PaidAt:             data.PaidAt,
		IsShipped:          data.IsShipped,
		ShippedAt:          data.ShippedAt,
		IsDelivered:        data.IsDelivered,
		DeliveredAt:        data.DeliveredAt,
		IsCancelled:        data.IsCancelled,
		CancelledAt:        data.CancelledAt,
		PaymentMethod:      data.PaymentMethod,
		CancellationReason: data.CancellationReason,
		RefundedAt:         data.RefundedAt,
		RefundReason:       data.RefundReason,
		TrackingNumber:     data.TrackingNumber,
		Carrier:            data.Carrier,
	}

	if data.PaymentResult != nil {
		orderM.PaymentID = data.PaymentResult.ID
		orderM.PaymentStatus = data.PaymentResult.Status
		orderM.PaymentUpdateTime = data.PaymentResult.UpdateTime
		orderM.PaymentEmail = data.PaymentResult.EmailAddress
	}

	return orderM
}
