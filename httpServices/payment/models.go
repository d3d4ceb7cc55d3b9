package payment

// CreateSessionRequest describes one hosted checkout attempt.
type CreateSessionRequest struct {
	Amount      float64 // in currency units, e.g. rand
	Currency    string
	Name        string
	Description string
	SuccessURL  string
	CancelURL   string
}

// CheckoutSession is the provider's handle for a checkout attempt.
type CheckoutSession struct {
	ID          string
	RedirectURL string
}

// Status is the provider-side payment state of a checkout session.
type Status string

const (
	StatusPaid   Status = "paid"
	StatusUnpaid Status = "unpaid"
)

// MinimumChargeAmount is the smallest amount the provider will charge (R0.50).
const MinimumChargeAmount = 0.50
