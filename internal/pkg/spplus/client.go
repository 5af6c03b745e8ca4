package spplus

import (
	"context"
	"fmt"
	"time"

	"github.com/mwork/eopayment/internal/pkg/gateway"
	"github.com/mwork/eopayment/internal/pkg/logger"
	"github.com/mwork/eopayment/internal/pkg/txid"
	"github.com/mwork/eopayment/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

const referenceLength = 20

// Client represents the SPPlus payment backend
type Client struct {
	config Config
	key    []byte
	ids    gateway.IDGenerator
	now    func() time.Time
}

// NewClient validates cfg and derives the signing key
func NewClient(cfg Config, ids gateway.IDGenerator) (*Client, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	key, err := DecryptKey(cfg.Cle)
	if err != nil {
		return nil, &gateway.ConfigError{Backend: gateway.KindSPPlus, Field: "cle", Reason: err.Error()}
	}
	return &Client{
		config: cfg,
		key:    key,
		ids:    ids,
		now:    time.Now,
	}, nil
}

func (c *Client) Kind() gateway.Kind {
	return gateway.KindSPPlus
}

func (c *Client) Describe() gateway.Description {
	return Describe()
}

// Request builds the signed redirect URL. The reference is the correlation id.
func (c *Client) Request(ctx context.Context, amount decimal.Decimal, opts gateway.RequestOptions) (*gateway.Request, error) {
	montant, err := gateway.Units(amount)
	if err != nil {
		return nil, err
	}
	if opts.NextURL != "" && !validator.IsReturnURL(opts.NextURL) {
		return nil, &gateway.ValidationError{Field: "urlretour", Value: opts.NextURL, Reason: "must be an absolute URL without parameters"}
	}

	reference, err := c.ids.New(ctx, referenceLength, txid.Alphanumeric, "spplus", c.config.Siret)
	if err != nil {
		return nil, fmt.Errorf("spplus: failed to generate reference: %w", err)
	}

	explicit := gateway.Fields{
		{Name: "reference", Value: reference},
		{Name: "montant", Value: montant},
	}
	if opts.Email != "" {
		explicit.Set("email", opts.Email)
	}
	if opts.NextURL != "" {
		explicit.Set("urlretour", opts.NextURL)
	}
	fields, err := parameters(c.now).Resolve(explicit, c.config.configured())
	if err != nil {
		return nil, err
	}

	signature := SignRequest(c.key, fields)
	paymentURL := fmt.Sprintf("%s?%s&hmac=%s", c.config.ServiceURL, fields.Encode(), signature)

	logger.FromContext(ctx).Debug().
		Str("reference", reference).
		Str("montant", montant).
		Msg("spplus payment request built")

	fields.Set("hmac", signature)
	return &gateway.Request{
		CorrelationID: reference,
		Kind:          gateway.ArtifactURL,
		Artifact:      paymentURL,
		Fields:        fields,
	}, nil
}
