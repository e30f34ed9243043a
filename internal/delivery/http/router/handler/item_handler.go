package handler

import (
	"log/slog"
	"net/http"

	"bazaar/internal/delivery/http/middleware"
	"bazaar/internal/delivery/http/response"
	domainerrors "bazaar/internal/domain/errors"
	"bazaar/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ItemHandler holds dependencies for catalog-related handlers.
type ItemHandler struct {
	uc     usecase.CatalogUsecase
	logger *slog.Logger
}

// NewItemHandler is the constructor for ItemHandler, injected by Fx.
func NewItemHandler(uc usecase.CatalogUsecase, logger *slog.Logger) *ItemHandler {
	return &ItemHandler{
		uc:     uc,
		logger: logger,
	}
}

// ListItems returns the full catalog, newest first.
func (h *ItemHandler) ListItems(c echo.Context) error {
	items, err := h.uc.ListItems(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, items, "Items fetched successfully")
}

// GetItem returns a single catalog item.
func (h *ItemHandler) GetItem(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainerrors.ErrItemNotFound
	}

	item, err := h.uc.GetItem(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, item, "Item fetched successfully")
}

// CreateItem creates a catalog item on behalf of an admin.
func (h *ItemHandler) CreateItem(c echo.Context) error {
	var input *usecase.CreateItemInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid item input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	createdBy, _ := c.Get(middleware.ContextKeyUserID).(uuid.UUID)

	item, err := h.uc.CreateItem(c.Request().Context(), input, createdBy)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, item, "Item created successfully")
}

// UpdateItem applies a partial update to an existing item.
func (h *ItemHandler) UpdateItem(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainerrors.ErrItemNotFound
	}

	var input *usecase.UpdateItemInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid item input")
	}

	item, err := h.uc.UpdateItem(c.Request().Context(), id, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, item, "Item updated successfully")
}

// DeleteItem removes an item permanently.
func (h *ItemHandler) DeleteItem(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainerrors.ErrItemNotFound
	}

	if err := h.uc.DeleteItem(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Item removed"}, "Item deleted successfully")
}
