// Package errors defines the application error taxonomy. Business failures
// are AppError values carrying a stable classification; the HTTP error
// middleware is the single place where they become responses.
package errors

import (
	"fmt"
	"net/http"

	"bazaar/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Authentication and authorization
	ErrUnauthenticated = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHENTICATED",
		"User not authenticated",
		"",
	)

	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Invalid credentials",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"Access denied",
		"",
	)

	// User-related errors
	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"User not found",
		"",
	)

	ErrUserAlreadyExists = NewBaseError(
		http.StatusConflict,
		"USER_ALREADY_EXISTS",
		"User already exists",
		"",
	)

	ErrInvalidRole = NewBaseError(
		http.StatusBadRequest,
		"INVALID_ROLE",
		"Invalid role",
		"",
	)

	ErrCannotDeleteSelf = NewBaseError(
		http.StatusBadRequest,
		"CANNOT_DELETE_SELF",
		"Cannot delete your own account",
		"",
	)

	// Catalog-related errors
	ErrItemNotFound = NewBaseError(
		http.StatusNotFound,
		"ITEM_NOT_FOUND",
		"Item not found",
		"",
	)

	ErrDuplicateSKU = NewBaseError(
		http.StatusConflict,
		"DUPLICATE_SKU",
		"An item with this SKU already exists",
		"",
	)

	// Cart-related errors
	ErrCartNotFound = NewBaseError(
		http.StatusNotFound,
		"CART_NOT_FOUND",
		"Cart not found",
		"",
	)

	ErrCartLineNotFound = NewBaseError(
		http.StatusNotFound,
		"CART_LINE_NOT_FOUND",
		"Item not found in cart",
		"",
	)

	// Order-related errors
	ErrOrderNotFound = NewBaseError(
		http.StatusNotFound,
		"ORDER_NOT_FOUND",
		"Order not found",
		"",
	)

	ErrOrderAccessDenied = NewBaseError(
		http.StatusUnauthorized,
		"ORDER_ACCESS_DENIED",
		"Not authorized to view this order",
		"",
	)

	ErrOrderAlreadyPaid = NewBaseError(
		http.StatusConflict,
		"ORDER_ALREADY_PAID",
		"Order is already paid",
		"",
	)

	ErrShippingIncomplete = NewBaseError(
		http.StatusBadRequest,
		"SHIPPING_INCOMPLETE",
		"Shipping information is incomplete",
		"",
	)

	ErrOrderItemMissingRef = NewBaseError(
		http.StatusBadRequest,
		"ORDER_ITEM_MISSING_REF",
		"Item ID is missing in order item",
		"",
	)

	ErrNoOrderItems = NewBaseError(
		http.StatusBadRequest,
		"NO_ORDER_ITEMS",
		"No order items or invalid order items format",
		"",
	)

	ErrInvalidEmail = NewBaseError(
		http.StatusBadRequest,
		"INVALID_EMAIL",
		"Please enter a valid email address",
		"",
	)

	ErrInvalidStatus = NewBaseError(
		http.StatusBadRequest,
		"INVALID_STATUS",
		"Invalid status",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Validation failed",
		"",
	)

	// Transaction-related errors
	ErrTransactionFailed = NewBaseError(
		http.StatusInternalServerError,
		"TRANSACTION_FAILED",
		"Database transaction failed",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)
)

// NewInsufficientStock reports that an order line requests more units than
// the catalog holds. The message states the item name and available count.
func NewInsufficientStock(name string, available int) AppError {
	return NewBaseError(
		http.StatusBadRequest,
		"INSUFFICIENT_STOCK",
		fmt.Sprintf("Not enough stock for %s. Only %d available", name, available),
		"",
	)
}

// NewCartStockExceeded reports that a cart mutation requests more units than
// the catalog holds.
func NewCartStockExceeded(available int) AppError {
	return NewBaseError(
		http.StatusBadRequest,
		"INSUFFICIENT_STOCK",
		fmt.Sprintf("Only %d items available in stock", available),
		"",
	)
}

// NewProductNotFound reports an unresolvable item reference in an order,
// naming the reference as supplied by the client.
func NewProductNotFound(ref string) AppError {
	return NewBaseError(
		http.StatusNotFound,
		"PRODUCT_NOT_FOUND",
		fmt.Sprintf("Product %s not found", ref),
		"",
	)
}

// NewInvalidQuantity reports an explicit quantity below one.
func NewInvalidQuantity(quantity int) AppError {
	return NewBaseError(
		http.StatusBadRequest,
		"INVALID_QUANTITY",
		fmt.Sprintf("Invalid quantity: %d", quantity),
		"",
	)
}

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "Database execution failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
