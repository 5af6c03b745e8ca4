// Package systempay implements the SystemPay payment pages of Banque
// Populaire (Natixis), protocol versions V1 and V2. Both sign with SHA-1 over
// '+' joined field values followed by a shared secret.
package systempay

import (
	"strings"

	"github.com/mwork/eopayment/internal/pkg/gateway"
	"github.com/mwork/eopayment/internal/pkg/validator"
)

const (
	ServiceURL = "https://systempay.cyberpluspaiement.com/vads-payment/"

	CtxTest       = "TEST"
	CtxProduction = "PRODUCTION"
)

// Version is the SystemPay protocol version
type Version string

const (
	V1 Version = "V1"
	V2 Version = "V2"
)

// Prefix is the field name prefix of the version
func (v Version) Prefix() string {
	if v == V2 {
		return "vads_"
	}
	return ""
}

// Config holds SystemPay configuration
type Config struct {
	Version          Version `json:"version" validate:"required,oneof=V1 V2"`
	SecretTest       string  `json:"secret_test"`
	SecretProduction string  `json:"secret_production"`
	SiteID           string  `json:"site_id" validate:"required,numeric,len=8"`
	CtxMode          string  `json:"ctx_mode" validate:"required,ctxmode"`
	ServiceURL       string  `json:"service_url" validate:"omitempty,url"`
	// Fields are configured request values (language, payment_cards...),
	// with or without the vads_ prefix
	Fields map[string]string `json:"fields"`
}

func (c Config) Kind() gateway.Kind {
	if c.Version == V1 {
		return gateway.KindSystemPayV1
	}
	return gateway.KindSystemPayV2
}

func (c Config) withDefaults() Config {
	if c.Version == "" {
		c.Version = V2
	}
	if c.CtxMode == "" {
		c.CtxMode = CtxTest
	}
	c.CtxMode = strings.ToUpper(c.CtxMode)
	if c.ServiceURL == "" {
		c.ServiceURL = ServiceURL
	}
	return c
}

// Validate checks the configuration. The secret of the selected context
// mode is mandatory.
func (c Config) Validate() error {
	if errs := validator.Check(c); len(errs) > 0 {
		return &gateway.ConfigError{Backend: c.Kind(), Field: errs[0].Field, Reason: errs[0].Message}
	}
	if _, ok := c.secret(c.CtxMode); !ok {
		return &gateway.ConfigError{Backend: c.Kind(), Field: "secret_" + strings.ToLower(c.CtxMode), Reason: "secret for context mode " + c.CtxMode + " is missing"}
	}
	return nil
}

// secret selects the shared secret by context mode, case-insensitively
func (c Config) secret(ctxMode string) (string, bool) {
	var s string
	switch strings.ToUpper(ctxMode) {
	case CtxTest:
		s = c.SecretTest
	case CtxProduction:
		s = c.SecretProduction
	}
	return s, s != ""
}

// configured returns the configured fields with the version prefix applied
func (c Config) configured() gateway.Fields {
	p := c.Version.Prefix()
	fields := gateway.Fields{
		{Name: p + "site_id", Value: c.SiteID},
		{Name: p + "ctx_mode", Value: c.CtxMode},
	}
	for name, value := range c.Fields {
		if p != "" && !strings.HasPrefix(name, p) {
			name = p + name
		}
		if !fields.Has(name) {
			fields = append(fields, gateway.Field{Name: name, Value: value})
		}
	}
	return fields
}

// Describe documents the configuration options
func Describe(version Version) gateway.Description {
	return gateway.Description{
		Caption: "SystemPay payment service of Banque Populaire, protocol " + string(version),
		Options: []gateway.OptionDetail{
			{Name: "secret_test", Caption: "Shared secret for the TEST context", Required: true},
			{Name: "secret_production", Caption: "Shared secret for the PRODUCTION context"},
			{Name: "site_id", Caption: "Site identifier, 8 digits", Required: true},
			{Name: "ctx_mode", Caption: "TEST or PRODUCTION", Default: CtxTest},
			{Name: "service_url", Caption: "Payment page URL", Default: ServiceURL},
		},
	}
}
