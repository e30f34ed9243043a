package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecalculatePrices(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		items        []OrderItem
		wantItems    float64
		wantShipping float64
		wantTax      float64
		wantTotal    float64
	}{
		{
			name:         "flat shipping under threshold",
			items:        []OrderItem{{Quantity: 1, Price: 50}},
			wantItems:    50,
			wantShipping: 10,
			wantTax:      7.5,
			wantTotal:    67.5,
		},
		{
			name:         "free shipping over threshold",
			items:        []OrderItem{{Quantity: 3, Price: 40}},
			wantItems:    120,
			wantShipping: 0,
			wantTax:      18,
			wantTotal:    138,
		},
		{
			name:         "threshold itself still pays shipping",
			items:        []OrderItem{{Quantity: 2, Price: 50}},
			wantItems:    100,
			wantShipping: 10,
			wantTax:      15,
			wantTotal:    125,
		},
		{
			name:         "empty order",
			items:        nil,
			wantItems:    0,
			wantShipping: 10,
			wantTax:      0,
			wantTotal:    10,
		},
		{
			name:         "tax rounded to cents",
			items:        []OrderItem{{Quantity: 1, Price: 9.99}},
			wantItems:    9.99,
			wantShipping: 10,
			wantTax:      1.5,
			wantTotal:    21.49,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			order := &Order{
				OrderItems: tt.items,
				// Advisory client values must be discarded
				ItemsPrice:    999,
				TaxPrice:      999,
				ShippingPrice: 999,
				TotalPrice:    999,
			}
			order.RecalculatePrices()

			assert.InDelta(t, tt.wantItems, order.ItemsPrice, 1e-9)
			assert.InDelta(t, tt.wantShipping, order.ShippingPrice, 1e-9)
			assert.InDelta(t, tt.wantTax, order.TaxPrice, 1e-9)
			assert.InDelta(t, tt.wantTotal, order.TotalPrice, 1e-9)
		})
	}
}

func TestApplyStatus_PaidInputStoredAsProcessing(t *testing.T) {
	t.Parallel()

	now := time.Now()
	order := &Order{Status: StatusPending}

	err := order.ApplyStatus(StatusInputPaid, StatusUpdate{
		PaymentResult: &PaymentResult{ID: "pay-1", Status: "completed"},
		PaymentMethod: "PayPal",
	}, now)

	require.NoError(t, err)
	assert.Equal(t, StatusProcessing, order.Status)
	assert.True(t, order.IsPaid)
	require.NotNil(t, order.PaidAt)
	assert.Equal(t, now, *order.PaidAt)
	assert.Equal(t, "PayPal", order.PaymentMethod)
	require.NotNil(t, order.PaymentResult)
	assert.Equal(t, "pay-1", order.PaymentResult.ID)
}

func TestApplyStatus_ResetsFlagsBeforeApplying(t *testing.T) {
	t.Parallel()

	now := time.Now()
	paidAt := now.Add(-time.Hour)
	order := &Order{
		Status: StatusProcessing,
		IsPaid: true,
		PaidAt: &paidAt,
	}

	err := order.ApplyStatus(StatusShipped.String(), StatusUpdate{}, now)

	require.NoError(t, err)
	assert.Equal(t, StatusShipped, order.Status)
	assert.True(t, order.IsShipped)
	assert.False(t, order.IsPaid)
	require.NotNil(t, order.ShippedAt)
	assert.Equal(t, now, *order.ShippedAt)
}

func TestApplyStatus_RefundedKeepsAllFlagsFalse(t *testing.T) {
	t.Parallel()

	now := time.Now()
	order := &Order{
		Status:      StatusDelivered,
		IsPaid:      true,
		IsShipped:   true,
		IsDelivered: true,
	}

	err := order.ApplyStatus(StatusRefunded.String(), StatusUpdate{
		RefundReason: "damaged on arrival",
	}, now)

	require.NoError(t, err)
	assert.Equal(t, StatusRefunded, order.Status)
	assert.False(t, order.IsPaid)
	assert.False(t, order.IsShipped)
	assert.False(t, order.IsDelivered)
	assert.False(t, order.IsCancelled)
	require.NotNil(t, order.RefundedAt)
	assert.Equal(t, "damaged on arrival", order.RefundReason)
}

func TestApplyStatus_CancelledRecordsReason(t *testing.T) {
	t.Parallel()

	now := time.Now()
	suppliedAt := now.Add(-10 * time.Minute)
	order := &Order{Status: StatusPending}

	err := order.ApplyStatus(StatusCancelled.String(), StatusUpdate{
		CancelledAt:        &suppliedAt,
		CancellationReason: "changed my mind",
	}, now)

	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, order.Status)
	assert.True(t, order.IsCancelled)
	assert.Equal(t, suppliedAt, *order.CancelledAt)
	assert.Equal(t, "changed my mind", order.CancellationReason)
}

func TestApplyStatus_UnknownInputLeavesOrderUntouched(t *testing.T) {
	t.Parallel()

	order := &Order{Status: StatusPending, IsPaid: true}

	err := order.ApplyStatus("teleported", StatusUpdate{}, time.Now())

	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.Equal(t, StatusPending, order.Status)
	assert.True(t, order.IsPaid)
}

func TestOrderValidEmail(t *testing.T) {
	t.Parallel()

	assert.True(t, (&Order{Email: "buyer@example.com"}).ValidEmail())
	assert.False(t, (&Order{Email: "not-an-email"}).ValidEmail())
	assert.False(t, (&Order{}).ValidEmail())
}

func TestShippingAddressComplete(t *testing.T) {
	t.Parallel()

	complete := ShippingAddress{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"}
	assert.True(t, complete.Complete())

	missing := ShippingAddress{FirstName: "Ada", LastName: "Lovelace"}
	assert.False(t, missing.Complete())
}

func TestOrderStatusIsValid(t *testing.T) {
	t.Parallel()

	for _, s := range []OrderStatus{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled, StatusRefunded} {
		assert.True(t, s.IsValid(), s.String())
	}

	// "paid" is a transition input, never a stored status
	assert.False(t, OrderStatus(StatusInputPaid).IsValid())
}
