package payment

import (
	"context"
	"fmt"

	"github.com/mwork/eopayment/internal/pkg/gateway"
	"github.com/mwork/eopayment/internal/pkg/logger"
	"github.com/shopspring/decimal"
)

// Payment wraps a backend with request logging
type Payment struct {
	backend Backend
}

// NewPayment builds the backend for cfg and wraps it
func NewPayment(cfg BackendConfig, deps Dependencies) (*Payment, error) {
	backend, err := New(cfg, deps)
	if err != nil {
		return nil, err
	}
	return &Payment{backend: backend}, nil
}

// Wrap uses an already built backend
func Wrap(backend Backend) *Payment {
	return &Payment{backend: backend}
}

func (p *Payment) Kind() gateway.Kind {
	return p.backend.Kind()
}

func (p *Payment) Describe() gateway.Description {
	return p.backend.Describe()
}

// Request starts a payment of amount, expressed in currency units
func (p *Payment) Request(ctx context.Context, amount decimal.Decimal, opts gateway.RequestOptions) (*gateway.Request, error) {
	log := logger.FromContext(ctx)
	req, err := p.backend.Request(ctx, amount, opts)
	if err != nil {
		log.Error().Err(err).
			Str("backend", p.backend.Kind().String()).
			Str("amount", amount.String()).
			Msg("Payment request failed")
		return nil, fmt.Errorf("%s request: %w", p.backend.Kind(), err)
	}

	log.Info().
		Str("backend", p.backend.Kind().String()).
		Str("transaction_id", req.CorrelationID).
		Str("amount", amount.String()).
		Str("artifact", req.Kind.String()).
		Msg("Payment request created")
	return req, nil
}

// Response parses a bank notification. Callers must only act on
// gateway.Response.Authoritative.
func (p *Payment) Response(ctx context.Context, rawQuery string) (*gateway.Response, error) {
	log := logger.FromContext(ctx)
	resp, err := p.backend.Response(ctx, rawQuery)
	if err != nil {
		log.Error().Err(err).
			Str("backend", p.backend.Kind().String()).
			Msg("Payment notification rejected")
		return nil, fmt.Errorf("%s response: %w", p.backend.Kind(), err)
	}

	event := log.Info()
	if !resp.Signed {
		event = log.Warn()
	}
	event.
		Str("backend", p.backend.Kind().String()).
		Str("order_id", resp.OrderID).
		Str("bank_transaction_id", resp.TransactionID).
		Bool("result", resp.Result).
		Bool("signed", resp.Signed).
		Str("bank_status", resp.BankStatus).
		Msg("Payment notification received")
	return resp, nil
}
