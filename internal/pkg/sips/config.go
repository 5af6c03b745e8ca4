// Package sips implements the ATOS/SIPS payment system used by many French
// banks. Signing and verification are done by the request and response
// programs of the bank middleware; this package marshals their arguments and
// parses their output.
package sips

import (
	"sort"
	"time"

	"github.com/mwork/eopayment/internal/pkg/gateway"
	"github.com/mwork/eopayment/internal/pkg/validator"
)

const (
	DefaultMerchantID      = "014213245611111"
	DefaultMerchantCountry = "fr"
	DefaultCurrencyCode    = "978"
)

// Config holds SIPS configuration
type Config struct {
	BinPath         string `json:"binpath" validate:"required"`  // Directory of the request and response programs
	PathFile        string `json:"pathfile"`                     // Middleware pathfile, passed to both programs
	MerchantID      string `json:"merchant_id" validate:"omitempty,numeric"`
	MerchantCountry string `json:"merchant_country" validate:"omitempty,len=2"`
	CurrencyCode    string `json:"currency_code" validate:"omitempty,numeric,len=3"`
	// Params are extra request parameters, restricted to those the request
	// program accepts
	Params  map[string]string `json:"params"`
	Timeout time.Duration     `json:"timeout"`
}

func (Config) Kind() gateway.Kind {
	return gateway.KindSIPS
}

func (c Config) withDefaults() Config {
	if c.MerchantID == "" {
		c.MerchantID = DefaultMerchantID
	}
	if c.MerchantCountry == "" {
		c.MerchantCountry = DefaultMerchantCountry
	}
	if c.CurrencyCode == "" {
		c.CurrencyCode = DefaultCurrencyCode
	}
	return c
}

// Validate checks the configuration
func (c Config) Validate() error {
	if errs := validator.Check(c); len(errs) > 0 {
		return &gateway.ConfigError{Backend: gateway.KindSIPS, Field: errs[0].Field, Reason: errs[0].Message}
	}
	request := parameters()
	for _, name := range c.paramNames() {
		p, ok := request.Lookup(name)
		if !ok || name == "transaction_id" || name == "amount" {
			return &gateway.ConfigError{Backend: gateway.KindSIPS, Field: "params." + name, Reason: "not a request parameter"}
		}
		if err := p.Check(c.Params[name]); err != nil {
			return &gateway.ConfigError{Backend: gateway.KindSIPS, Field: "params." + name, Reason: err.Error()}
		}
	}
	return nil
}

func (c Config) paramNames() []string {
	names := make([]string, 0, len(c.Params))
	for name := range c.Params {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// configured returns the request parameters set by the configuration
func (c Config) configured() gateway.Fields {
	fields := gateway.Fields{
		{Name: "merchant_id", Value: c.MerchantID},
		{Name: "merchant_country", Value: c.MerchantCountry},
		{Name: "currency_code", Value: c.CurrencyCode},
	}
	if c.PathFile != "" {
		fields.Set("pathfile", c.PathFile)
	}
	for _, name := range c.paramNames() {
		fields.Set(name, c.Params[name])
	}
	return fields
}

// Describe documents the configuration options
func Describe() gateway.Description {
	return gateway.Description{
		Caption: "SIPS",
		Options: []gateway.OptionDetail{
			{Name: "binpath", Caption: "Directory containing the request and response programs", Required: true},
			{Name: "pathfile", Caption: "Absolute path of the pathfile given by the bank"},
			{Name: "merchant_id", Caption: "Merchant identifier", Default: DefaultMerchantID},
			{Name: "merchant_country", Caption: "Merchant country", Default: DefaultMerchantCountry},
			{Name: "currency_code", Caption: "ISO 4217 currency code", Default: DefaultCurrencyCode},
		},
	}
}
