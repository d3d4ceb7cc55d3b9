package payment

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// MockProvider implements Provider for tests and local development.
type MockProvider struct {
	mu       sync.Mutex
	sessions map[string]Status

	// FailCreate makes CreateSession return an error.
	FailCreate bool
	// FailRead makes GetPaymentStatus return an error.
	FailRead bool
}

func NewMockProvider() *MockProvider {
	return &MockProvider{
		sessions: make(map[string]Status),
	}
}

// CreateSession records an unpaid session with a generated id.
func (p *MockProvider) CreateSession(ctx context.Context, req CreateSessionRequest) (*CheckoutSession, error) {
	if p.FailCreate {
		return nil, fmt.Errorf("mock provider: session creation refused")
	}

	id := fmt.Sprintf("cs_mock_%s", uuid.New().String()[:8])

	p.mu.Lock()
	p.sessions[id] = StatusUnpaid
	p.mu.Unlock()

	return &CheckoutSession{
		ID:          id,
		RedirectURL: "https://checkout.mock.local/pay/" + id,
	}, nil
}

// GetPaymentStatus returns the recorded state of a session.
func (p *MockProvider) GetPaymentStatus(ctx context.Context, sessionID string) (Status, error) {
	if p.FailRead {
		return StatusUnpaid, fmt.Errorf("mock provider: status read refused")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	status, ok := p.sessions[sessionID]
	if !ok {
		return StatusUnpaid, fmt.Errorf("mock provider: session not found: %s", sessionID)
	}
	return status, nil
}

// CompletePayment marks a session as paid, simulating the user finishing
// the hosted checkout.
func (p *MockProvider) CompletePayment(sessionID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sessions[sessionID] = StatusPaid
}

// Name returns the provider name
func (p *MockProvider) Name() string {
	return "mock"
}
