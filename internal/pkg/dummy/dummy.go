// Package dummy talks to a fake bank used to test merchant integrations
// without real money. Notifications are trusted only when marked signed.
package dummy

import (
	"context"
	"fmt"

	"github.com/mwork/eopayment/internal/pkg/gateway"
	"github.com/mwork/eopayment/internal/pkg/logger"
	"github.com/mwork/eopayment/internal/pkg/txid"
	"github.com/mwork/eopayment/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

const (
	ServiceURL = "http://dummy-payment.demo.entrouvert.com/"

	// AckContent is returned when the fake bank marks its notification signed
	AckContent = "signature ok"

	transactionIDLength = 30
)

// Config holds dummy backend configuration
type Config struct {
	DirectNotificationURL string `json:"direct_notification_url" validate:"required,url"` // Where the fake bank POSTs notifications
	Siret                 string `json:"siret" validate:"required,max=32"`
	Origin                string `json:"origin" validate:"required"` // Requesting service name shown to the user
	NextURL               string `json:"next_url" validate:"omitempty,httpurl"`
	ServiceURL            string `json:"dummy_service_url" validate:"omitempty,url"`
	// ConsiderAllResponseSigned trusts notifications lacking the signed marker.
	// Test setups only.
	ConsiderAllResponseSigned bool `json:"consider_all_response_signed"`
}

func (Config) Kind() gateway.Kind {
	return gateway.KindDummy
}

// Validate checks the configuration
func (c Config) Validate() error {
	if errs := validator.Check(c); len(errs) > 0 {
		return &gateway.ConfigError{Backend: gateway.KindDummy, Field: errs[0].Field, Reason: errs[0].Message}
	}
	return nil
}

// Describe documents the configuration options
func Describe() gateway.Description {
	return gateway.Description{
		Caption: "Dummy payment backend",
		Options: []gateway.OptionDetail{
			{Name: "direct_notification_url", Caption: "direct notification url", Required: true},
			{Name: "origin", Caption: "name of the requesting service, to present in the user interface", Required: true},
			{Name: "siret", Caption: "dummy siret parameter", Required: true},
			{Name: "next_url", Caption: "Return URL for the user"},
			{Name: "dummy_service_url", Caption: "URL of the dummy payment service", Default: ServiceURL},
			{Name: "consider_all_response_signed", Caption: "All response will be considered as signed (to test payment locally for example, as you cannot received the signed callback)", Default: "false"},
		},
	}
}

// Client represents the dummy payment backend
type Client struct {
	config Config
	ids    gateway.IDGenerator
}

func NewClient(cfg Config, ids gateway.IDGenerator) (*Client, error) {
	if cfg.ServiceURL == "" {
		cfg.ServiceURL = ServiceURL
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Client{config: cfg, ids: ids}, nil
}

func (c *Client) Kind() gateway.Kind {
	return gateway.KindDummy
}

func (c *Client) Describe() gateway.Description {
	return Describe()
}

// Request builds the fake bank URL. A configured next_url wins over the
// caller's.
func (c *Client) Request(ctx context.Context, amount decimal.Decimal, opts gateway.RequestOptions) (*gateway.Request, error) {
	if err := gateway.CheckAmount(amount); err != nil {
		return nil, err
	}
	transactionID, err := c.ids.New(ctx, transactionIDLength, txid.Alphanumeric, "dummy", c.config.Siret)
	if err != nil {
		return nil, fmt.Errorf("dummy: failed to generate transaction id: %w", err)
	}

	explicit := gateway.Fields{
		{Name: "transaction_id", Value: transactionID},
		{Name: "amount", Value: amount.String()},
	}
	if opts.Email != "" {
		explicit.Set("email", opts.Email)
	}
	if c.config.NextURL != "" {
		explicit.Set("return_url", c.config.NextURL)
	} else if opts.NextURL != "" {
		explicit.Set("return_url", opts.NextURL)
	}
	fields, err := parameters().Resolve(explicit, gateway.Fields{
		{Name: "siret", Value: c.config.Siret},
		{Name: "direct_notification_url", Value: c.config.DirectNotificationURL},
		{Name: "origin", Value: c.config.Origin},
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Debug().Str("transaction_id", transactionID).Msg("dummy payment request built")
	return &gateway.Request{
		CorrelationID: transactionID,
		Kind:          gateway.ArtifactURL,
		Artifact:      c.config.ServiceURL + "?" + fields.Encode(),
		Fields:        fields,
	}, nil
}

// Response parses a fake bank notification: "ok" marks a success, "signed"
// marks an authenticated call
func (c *Client) Response(ctx context.Context, rawQuery string) (*gateway.Response, error) {
	fields := gateway.ParseQuery(rawQuery)
	transactionID := fields.Get("transaction_id")
	result := fields.Get("ok") != "" && transactionID != ""
	signedMarker := fields.Get("signed") != ""
	signed := signedMarker || c.config.ConsiderAllResponseSigned

	status := "ok"
	if !result {
		status = "nok"
	}
	bankData := fields.Map()
	bankData[gateway.BankIDKey] = transactionID

	resp := &gateway.Response{
		Result:        result,
		SignedResult:  gateway.SignedResultFor(result, signed),
		Signed:        signed,
		BankData:      bankData,
		BankStatus:    status,
		OrderID:       transactionID,
		TransactionID: transactionID,
	}
	if signedMarker {
		resp.ReturnContent = AckContent
	}
	return resp, nil
}
