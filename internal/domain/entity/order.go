package entity

import (
	"regexp"
	"time"

	"bazaar/internal/errors"

	"github.com/google/uuid"
)

// OrderStatus enumerates the persisted lifecycle states of an order.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
	StatusRefunded   OrderStatus = "refunded"
)

// StatusInputPaid is an accepted transition input that is stored as
// "processing" with the paid flag set; it is never persisted itself.
const StatusInputPaid = "paid"

// String returns the string representation of the OrderStatus.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid checks if the OrderStatus is a persistable value.
func (s OrderStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled, StatusRefunded:
		return true
	default:
		return false
	}
}

// DefaultPaymentMethod is assigned to orders placed without one.
const DefaultPaymentMethod = "Stripe"

// Pricing rule constants: free shipping above the threshold, otherwise a
// flat fee, plus a fixed tax rate on the item subtotal.
const (
	FreeShippingThreshold = 100.0
	FlatShippingPrice     = 10.0
	TaxRate               = 0.15
)

// emailPattern is the minimal shape a contact email must match.
var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

// ErrInvalidStatus is returned by ApplyStatus for an unrecognized status
// input. The order is left unmodified in that case.
var ErrInvalidStatus = errors.New("invalid status")

// OrderItem is an immutable snapshot of one ordered line, captured at order
// time. ItemID is retained only for display and population.
type OrderItem struct {
	ItemID   uuid.UUID `json:"item"`
	Name     string    `json:"name"`
	Quantity int       `json:"quantity"`
	Price    float64   `json:"price"`
	ImageURL string    `json:"imageUrl,omitempty"`
}

// ShippingAddress is the destination recorded on an order.
type ShippingAddress struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// DefaultCountry is assigned when a shipping address omits the country.
const DefaultCountry = "United States"

// Complete reports whether the mandatory shipping fields are present.
func (a *ShippingAddress) Complete() bool {
	return a.FirstName != "" && a.LastName != "" && a.Email != ""
}

// PaymentResult is the opaque record returned by the payment collaborator.
// The wire shape is fixed for compatibility.
type PaymentResult struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	UpdateTime   string `json:"update_time"`
	EmailAddress string `json:"email_address"`
}

// Order is a placed order: snapshot line items, shipping destination,
// recomputed price breakdown and lifecycle flags. It is created once by the
// order workflow and mutated only through status transitions.
type Order struct {
	ID                 uuid.UUID       `json:"id"`
	UserID             uuid.UUID       `json:"user"`
	User               *User           `json:"userDetails,omitempty"`
	OrderItems         []OrderItem     `json:"orderItems"`
	ShippingAddress    ShippingAddress `json:"shippingAddress"`
	Email              string          `json:"email"`
	ItemsPrice         float64         `json:"itemsPrice"`
	TaxPrice           float64         `json:"taxPrice"`
	ShippingPrice      float64         `json:"shippingPrice"`
	TotalPrice         float64         `json:"totalPrice"`
	Status             OrderStatus     `json:"status"`
	IsPaid             bool            `json:"isPaid"`
	PaidAt             *time.Time      `json:"paidAt,omitempty"`
	IsShipped          bool            `json:"isShipped"`
	ShippedAt          *time.Time      `json:"shippedAt,omitempty"`
	IsDelivered        bool            `json:"isDelivered"`
	DeliveredAt        *time.Time      `json:"deliveredAt,omitempty"`
	IsCancelled        bool            `json:"isCancelled"`
	CancelledAt        *time.Time      `json:"cancelledAt,omitempty"`
	PaymentMethod      string          `json:"paymentMethod"`
	PaymentResult      *PaymentResult  `json:"paymentResult,omitempty"`
	CancellationReason string          `json:"cancellationReason"`
	RefundedAt         *time.Time      `json:"refundedAt,omitempty"`
	RefundReason       string          `json:"refundReason"`
	TrackingNumber     string          `json:"trackingNumber"`
	Carrier            string          `json:"carrier"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}

// ValidEmail reports whether the order's contact email matches the required
// pattern.
func (o *Order) ValidEmail() bool {
	return emailPattern.MatchString(o.Email)
}

// RecalculatePrices derives the authoritative price breakdown from the line
// items, discarding whatever the client supplied. It runs before every
// persist; since lines are immutable after creation it is idempotent.
func (o *Order) RecalculatePrices() {
	items := 0.0
	for _, line := range o.OrderItems {
		items += line.Price * float64(line.Quantity)
	}
	o.ItemsPrice = RoundMoney(items)
	if o.ItemsPrice > FreeShippingThreshold {
		o.ShippingPrice = 0
	} else {
		o.ShippingPrice = FlatShippingPrice
	}
	o.TaxPrice = RoundMoney(o.ItemsPrice * TaxRate)
	o.TotalPrice = RoundMoney(o.ItemsPrice + o.ShippingPrice + o.TaxPrice)
}

// StatusUpdate carries the optional per-status fields accompanying a
// transition. Absent timestamps default to the transition time.
type StatusUpdate struct {
	PaidAt             *time.Time     `json:"paidAt,omitempty"`
	ShippedAt          *time.Time     `json:"shippedAt,omitempty"`
	DeliveredAt        *time.Time     `json:"deliveredAt,omitempty"`
	CancelledAt        *time.Time     `json:"cancelledAt,omitempty"`
	RefundedAt         *time.Time     `json:"refundedAt,omitempty"`
	PaymentResult      *PaymentResult `json:"paymentResult,omitempty"`
	PaymentMethod      string         `json:"paymentMethod,omitempty"`
	CancellationReason string         `json:"cancellationReason,omitempty"`
	RefundReason       string         `json:"refundReason,omitempty"`
}

// ApplyStatus is the single general mutator of the order lifecycle. It
// resets all four boolean flags, then applies exactly the state associated
// with the input. The flags therefore reflect only the current status, not
// history; in particular a refunded order keeps all flags false. There is no
// transition-adjacency enforcement. An unrecognized input returns
// ErrInvalidStatus and leaves the order unmodified.
func (o *Order) ApplyStatus(input string, update StatusUpdate, now time.Time) error {
	switch input {
	case StatusProcessing.String(), StatusInputPaid, StatusShipped.String(),
		StatusDelivered.String(), StatusCancelled.String(), StatusRefunded.String():
	default:
		return ErrInvalidStatus
	}

	o.IsPaid = false
	o.IsShipped = false
	o.IsDelivered = false
	o.IsCancelled = false

	switch input {
	case StatusProcessing.String():
		o.Status = StatusProcessing
	case StatusInputPaid:
		o.Status = StatusProcessing
		o.IsPaid = true
		o.PaidAt = timestampOr(update.PaidAt, now)
		if update.PaymentResult != nil {
			o.PaymentResult = update.PaymentResult
		}
		if update.PaymentMethod != "" {
			o.PaymentMethod = update.PaymentMethod
		}
	case StatusShipped.String():
		o.Status = StatusShipped
		o.IsShipped = true
		o.ShippedAt = timestampOr(update.ShippedAt, now)
	case StatusDelivered.String():
		o.Status = StatusDelivered
		o.IsDelivered = true
		o.DeliveredAt = timestampOr(update.DeliveredAt, now)
	case StatusCancelled.String():
		o.Status = StatusCancelled
		o.IsCancelled = true
		o.CancelledAt = timestampOr(update.CancelledAt, now)
		o.CancellationReason = update.CancellationReason
	case StatusRefunded.String():
		o.Status = StatusRefunded
		o.RefundedAt = timestampOr(update.RefundedAt, now)
		o.RefundReason = update.RefundReason
	}

	return nil
}

func timestampOr(supplied *time.Time, fallback time.Time) *time.Time {
	if supplied != nil {
		return supplied
	}

	return &fallback
}
