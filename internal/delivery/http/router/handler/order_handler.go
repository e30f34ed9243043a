package handler

import (
	"log/slog"
	"net/http"

	"bazaar/internal/delivery/http/middleware"
	"bazaar/internal/delivery/http/response"
	"bazaar/internal/domain/entity"
	domainerrors "bazaar/internal/domain/errors"
	"bazaar/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// OrderHandler holds dependencies for order-related handlers.
type OrderHandler struct {
	uc     usecase.OrderUsecase
	userUc usecase.UserUsecase
	logger *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler, injected by Fx.
func NewOrderHandler(uc usecase.OrderUsecase, userUc usecase.UserUsecase, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		uc:     uc,
		userUc: userUc,
		logger: logger,
	}
}

// CreateOrder places a new order for the caller.
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	userID, ok := c.Get(middleware.ContextKeyUserID).(uuid.UUID)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Missing authentication context")
	}

	var input *usecase.CreateOrderInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order input")
	}

	order, err := h.uc.CreateOrder(c.Request().Context(), userID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, order, "Order placed successfully")
}

// GetOrder returns one order; only the owner or an admin may read it.
func (h *OrderHandler) GetOrder(c echo.Context) error {
	userID, ok := c.Get(middleware.ContextKeyUserID).(uuid.UUID)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Missing authentication context")
	}
	role, _ := c.Get(middleware.ContextKeyRole).(entity.Role)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainerrors.ErrOrderNotFound
	}

	order, err := h.uc.GetOrder(c.Request().Context(), id, userID, role)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "Order fetched successfully")
}

// ListMyOrders returns the caller's orders, newest first.
func (h *OrderHandler) ListMyOrders(c echo.Context) error {
	userID, ok := c.Get(middleware.ContextKeyUserID).(uuid.UUID)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Missing authentication context")
	}

	orders, err := h.uc.ListMyOrders(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, orders, "Orders fetched successfully")
}

// ListOrders returns all orders for an admin, newest first.
func (h *OrderHandler) ListOrders(c echo.Context) error {
	orders, err := h.uc.ListOrders(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, orders, "Orders fetched successfully")
}

// MarkPaid marks an order paid, recording the payment collaborator result.
func (h *OrderHandler) MarkPaid(c echo.Context) error {
	userID, ok := c.Get(middleware.ContextKeyUserID).(uuid.UUID)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Missing authentication context")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainerrors.ErrOrderNotFound
	}

	var input *usecase.MarkPaidInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid payment input")
	}

	// The caller's account email backs the payment email when the payment
	// collaborator did not supply one.
	callerEmail := ""
	if me, err := h.userUc.GetMe(c.Request().Context(), userID); err == nil {
		callerEmail = me.Email
	}

	order, err := h.uc.MarkPaid(c.Request().Context(), id, input, callerEmail)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "Order marked as paid")
}

// MarkDelivered marks an order delivered on behalf of an admin.
func (h *OrderHandler) MarkDelivered(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainerrors.ErrOrderNotFound
	}

	order, err := h.uc.MarkDelivered(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "Order marked as delivered")
}

// UpdateStatus drives the order status state machine on behalf of an admin.
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainerrors.ErrOrderNotFound
	}

	var input *usecase.StatusUpdateInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}

	order, err := h.uc.UpdateStatus(c.Request().Context(), id, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "Order status updated")
}
