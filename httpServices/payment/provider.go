package payment

import "context"

// Provider is the hosted checkout integration. The application only creates
// a session and later reads its payment status back.
type Provider interface {
	// CreateSession opens a checkout session and returns its id and the
	// URL the user must be redirected to.
	CreateSession(ctx context.Context, req CreateSessionRequest) (*CheckoutSession, error)

	// GetPaymentStatus reads the provider's payment state for a session.
	GetPaymentStatus(ctx context.Context, sessionID string) (Status, error)

	// Name returns the provider name
	Name() string
}
