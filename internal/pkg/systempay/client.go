package systempay

import (
	"context"
	"fmt"
	"time"

	"github.com/mwork/eopayment/internal/pkg/gateway"
	"github.com/mwork/eopayment/internal/pkg/logger"
	"github.com/mwork/eopayment/internal/pkg/schema"
	"github.com/mwork/eopayment/internal/pkg/txid"
	"github.com/shopspring/decimal"
)

const transIDLength = 6

// Client represents a SystemPay payment backend
type Client struct {
	config Config
	ids    gateway.IDGenerator
	now    func() time.Time
}

// NewClient validates cfg. An empty version means V2.
func NewClient(cfg Config, ids gateway.IDGenerator) (*Client, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Client{
		config: cfg,
		ids:    ids,
		now:    time.Now,
	}, nil
}

func (c *Client) Kind() gateway.Kind {
	return c.config.Kind()
}

func (c *Client) Describe() gateway.Description {
	return Describe(c.config.Version)
}

func (c *Client) schema() schema.Schema {
	return parameters(c.config.Version, c.now)
}

// Request builds the signed payment page URL. The correlation id is
// "<trans_date>_<trans_id>".
func (c *Client) Request(ctx context.Context, amount decimal.Decimal, opts gateway.RequestOptions) (*gateway.Request, error) {
	cents, err := gateway.Cents(amount)
	if err != nil {
		return nil, err
	}
	transID, err := c.ids.New(ctx, transIDLength, txid.Digits, "systempay", c.config.SiteID)
	if err != nil {
		return nil, fmt.Errorf("systempay: failed to generate transaction id: %w", err)
	}

	p := c.config.Version.Prefix()
	explicit := gateway.Fields{
		{Name: p + "amount", Value: cents},
		{Name: p + "trans_id", Value: transID},
	}
	if opts.Email != "" {
		explicit.Set(p+"cust_email", opts.Email)
	}
	if opts.NextURL != "" {
		explicit.Set(p+"url_return", opts.NextURL)
	}

	fields, err := c.schema().Resolve(explicit, c.config.configured())
	if err != nil {
		return nil, err
	}

	ctxMode := fields.Get(p + "ctx_mode")
	secret, ok := c.config.secret(ctxMode)
	if !ok {
		return nil, &gateway.ConfigError{Backend: c.Kind(), Field: "secrets", Reason: "no secret for context mode " + ctxMode}
	}
	fields.Set(SignatureField, c.requestSignature(fields, secret))

	transDate := fields.Get(p + "trans_date")
	logger.FromContext(ctx).Debug().
		Str("trans_id", transID).
		Str("trans_date", transDate).
		Str("ctx_mode", ctxMode).
		Msg("systempay payment request built")

	return &gateway.Request{
		CorrelationID: transDate + "_" + transID,
		Kind:          gateway.ArtifactURL,
		Artifact:      c.config.ServiceURL + "?" + fields.Encode(),
		Fields:        fields,
	}, nil
}
