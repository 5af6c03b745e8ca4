package sips

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mwork/eopayment/internal/pkg/gateway"
	"github.com/mwork/eopayment/internal/pkg/logger"
	"github.com/mwork/eopayment/internal/pkg/txid"
	"github.com/shopspring/decimal"
)

const transactionIDLength = 6

// Client represents the SIPS payment backend
type Client struct {
	config Config
	ids    gateway.IDGenerator
	runner Runner
}

// NewClient validates cfg. A nil runner runs the middleware programs with
// os/exec, bounded by cfg.Timeout.
func NewClient(cfg Config, ids gateway.IDGenerator, runner Runner) (*Client, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if runner == nil {
		runner = ExecRunner{Timeout: cfg.Timeout}
	}
	return &Client{
		config: cfg,
		ids:    ids,
		runner: runner,
	}, nil
}

func (c *Client) Kind() gateway.Kind {
	return gateway.KindSIPS
}

func (c *Client) Describe() gateway.Description {
	return Describe()
}

// Request asks the request program for the payment form. The order id is
// the correlation id.
func (c *Client) Request(ctx context.Context, amount decimal.Decimal, opts gateway.RequestOptions) (*gateway.Request, error) {
	cents, err := gateway.Cents(amount)
	if err != nil {
		return nil, err
	}

	configured := c.config.configured()
	transactionID, err := c.ids.New(ctx, transactionIDLength, txid.Digits, "sips", configured.Get("merchant_id"))
	if err != nil {
		return nil, fmt.Errorf("sips: failed to generate transaction id: %w", err)
	}
	orderID := strings.ReplaceAll(uuid.New().String(), "-", "")

	explicit := gateway.Fields{
		{Name: "transaction_id", Value: transactionID},
		{Name: "order_id", Value: orderID},
		{Name: "amount", Value: cents},
	}
	if opts.Email != "" {
		explicit.Set("customer_email", opts.Email)
	}
	if opts.NextURL != "" {
		explicit.Set("normal_return_url", opts.NextURL)
	}
	params, err := parameters().Resolve(explicit, configured)
	if err != nil {
		return nil, err
	}

	tokens, err := c.execute(ctx, "request", params, 3)
	if err != nil {
		return nil, err
	}
	if len(tokens) < 3 {
		return nil, &gateway.ExternalProcessError{Executable: "request", Code: tokens[0], Message: "unexpected output"}
	}
	code, message, form := strings.TrimSpace(tokens[0]), tokens[1], tokens[2]
	if code != "0" {
		return nil, &gateway.ExternalProcessError{Executable: "request", Code: code, Message: message}
	}

	logger.FromContext(ctx).Debug().
		Str("order_id", orderID).
		Str("transaction_id", transactionID).
		Msg("sips payment form built")

	return &gateway.Request{
		CorrelationID: orderID,
		Kind:          gateway.ArtifactHTML,
		Artifact:      form,
		Fields:        params,
	}, nil
}
