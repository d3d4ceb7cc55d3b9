package payment

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
)

// StripeProvider implements Provider using Stripe Checkout Sessions.
type StripeProvider struct{}

// NewStripeProvider configures the Stripe client with the given secret key.
func NewStripeProvider(secretKey string) (*StripeProvider, error) {
	if secretKey == "" {
		return nil, fmt.Errorf("stripe secret key is required")
	}

	stripe.Key = secretKey
	stripe.SetHTTPClient(&http.Client{Timeout: 10 * time.Second})

	return &StripeProvider{}, nil
}

// CreateSession opens a hosted checkout session for a single line item.
func (p *StripeProvider) CreateSession(ctx context.Context, req CreateSessionRequest) (*CheckoutSession, error) {
	// Stripe expects the smallest currency unit
	amountInCents := int64(req.Amount * 100)

	params := &stripe.CheckoutSessionParams{
		Params:             stripe.Params{Context: ctx},
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(req.Currency),
					UnitAmount: stripe.Int64(amountInCents),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(req.Name),
						Description: stripe.String(req.Description),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
	}

	s, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	return &CheckoutSession{
		ID:          s.ID,
		RedirectURL: s.URL,
	}, nil
}

// GetPaymentStatus reads the payment state of a checkout session back from
// Stripe. The read is retried once on transport failure.
func (p *StripeProvider) GetPaymentStatus(ctx context.Context, sessionID string) (Status, error) {
	if sessionID == "" {
		return StatusUnpaid, fmt.Errorf("session ID is required")
	}

	params := &stripe.CheckoutSessionParams{Params: stripe.Params{Context: ctx}}

	s, err := session.Get(sessionID, params)
	if err != nil {
		s, err = session.Get(sessionID, params)
	}
	if err != nil {
		return StatusUnpaid, fmt.Errorf("failed to get checkout session: %w", err)
	}

	if s.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid {
		return StatusPaid, nil
	}
	return StatusUnpaid, nil
}

// Name returns the provider name
func (p *StripeProvider) Name() string {
	return "stripe"
}
