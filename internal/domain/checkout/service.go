package checkout

import (
	"context"

	"github.com/mwork/eopayment/internal/pkg/gateway"
	"github.com/mwork/eopayment/internal/pkg/payment"
)

// Service starts payments and parses bank notifications for one backend.
// It keeps no state: replayed notifications yield the same result.
type Service struct {
	payment *payment.Payment
}

// NewService creates a new checkout service
func NewService(p *payment.Payment) *Service {
	return &Service{payment: p}
}

// CreatePayment builds the bank artifact for req
func (s *Service) CreatePayment(ctx context.Context, req CreatePaymentRequest) (*CreatePaymentResponse, error) {
	out, err := s.payment.Request(ctx, req.Amount, gateway.RequestOptions{
		Email:   req.Email,
		NextURL: req.NextURL,
	})
	if err != nil {
		return nil, err
	}
	return newCreatePaymentResponse(out), nil
}

// HandleNotification parses a raw notification. The returned content, when
// non-empty, must be written back to the bank verbatim.
func (s *Service) HandleNotification(ctx context.Context, rawQuery string) (*Notification, string, error) {
	resp, err := s.payment.Response(ctx, rawQuery)
	if err != nil {
		return nil, "", err
	}
	return newNotification(resp), resp.ReturnContent, nil
}

// Backend returns the kind of the configured backend
func (s *Service) Backend() gateway.Kind {
	return s.payment.Kind()
}

// Describe documents the options of a backend kind
func (s *Service) Describe(kind gateway.Kind) (gateway.Description, error) {
	return payment.Describe(kind)
}
