// Package mail implements outbound email delivery for order receipts.
package mail

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"bazaar/config"
	"bazaar/internal/domain/entity"
	"bazaar/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/fx"
)

const defaultFromName = "Bazaar"

// noopSender is used when mail delivery is not configured. Receipt sending
// is best effort, so a disabled mailer is a normal deployment mode.
type noopSender struct {
	logger *slog.Logger
}

func (s *noopSender) SendOrderReceipt(ctx context.Context, order *entity.Order) error {
	s.logger.Debug("[NoopMail] Mail delivery disabled, skipping receipt",
		slog.String("order_id", order.ID.String()),
	)

	return nil
}

// sendGridSender delivers order receipts through the SendGrid API.
type sendGridSender struct {
	client   *sendgrid.Client
	fromName string
	fromAddr string
	logger   *slog.Logger
}

// SenderParams holds dependencies for ReceiptSender, injected by Fx
type SenderParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// NewReceiptSender creates a ReceiptSender based on configuration. Without
// an API key it falls back to a no-op sender.
func NewReceiptSender(params SenderParams) service.ReceiptSender {
	cfg := params.Config.Mail
	logger := params.Logger

	if cfg == nil || cfg.SendGridAPIKey == "" {
		logger.Info("Mail not configured, using no-op receipt sender")

		return &noopSender{logger: logger}
	}

	fromName := cfg.FromName
	if fromName == "" {
		fromName = defaultFromName
	}

	logger.Info("Using SendGrid receipt sender",
		slog.String("from", cfg.FromAddress),
	)

	return &sendGridSender{
		client:   sendgrid.NewSendClient(cfg.SendGridAPIKey),
		fromName: fromName,
		fromAddr: cfg.FromAddress,
		logger:   logger,
	}
}

// SendOrderReceipt emails a summary of the freshly placed order.
func (s *sendGridSender) SendOrderReceipt(ctx context.Context, order *entity.Order) error {
	if order.Email == "" {
		return errors.New("order has no contact email")
	}

	from := sgmail.NewEmail(s.fromName, s.fromAddr)
	to := sgmail.NewEmail(order.ShippingAddress.FirstName, order.Email)
	subject := fmt.Sprintf("Order confirmation %s", order.ID)
	plainText := buildReceiptBody(order)

	message := sgmail.NewSingleEmail(from, subject, to, plainText, "")

	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return errors.Wrap(err, "failed to send order receipt")
	}

	if response.StatusCode >= 400 {
		return errors.Errorf("sendgrid returned status %d: %s", response.StatusCode, response.Body)
	}

	s.logger.Info("[SendGrid] Order receipt sent",
		slog.String("order_id", order.ID.String()),
		slog.Int("status", response.StatusCode),
	)

	return nil
}

func buildReceiptBody(order *entity.Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Thank you for your order, %s!\n\n", order.ShippingAddress.FirstName)
	fmt.Fprintf(&b, "Order %s placed at %s\n\n", order.ID, order.CreatedAt.Format("2006-01-02 15:04 MST"))

	for _, line := range order.OrderItems {
		fmt.Fprintf(&b, "  %d x %s - %.2f\n", line.Quantity, line.Name, line.Price)
	}

	fmt.Fprintf(&b, "\nItems:    %.2f\n", order.ItemsPrice)
	fmt.Fprintf(&b, "Shipping: %.2f\n", order.ShippingPrice)
	fmt.Fprintf(&b, "Tax:      %.2f\n", order.TaxPrice)
	fmt.Fprintf(&b, "Total:    %.2f\n", order.TotalPrice)

	addr := order.ShippingAddress
	fmt.Fprintf(&b, "\nShipping to:\n%s %s\n%s\n%s %s\n%s\n",
		addr.FirstName, addr.LastName, addr.Address, addr.City, addr.PostalCode, addr.Country)

	return b.String()
}

// Module provides the mail FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewReceiptSender),
)
