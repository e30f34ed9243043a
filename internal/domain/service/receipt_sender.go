package service

import (
	"context"

	"bazaar/internal/domain/entity"
)

// ReceiptSender delivers an order confirmation to the buyer's contact email.
// Sending is a post-commit side effect; failures must never fail the order.
type ReceiptSender interface {
	// SendOrderReceipt emails a summary of the freshly placed order.
	SendOrderReceipt(ctx context.Context, order *entity.Order) error
}
