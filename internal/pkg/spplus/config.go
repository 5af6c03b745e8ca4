// Package spplus implements the SPPlus payment service of the Caisse
// d'Epargne. Requests are redirect URLs signed with an HMAC derived from the
// merchant key; notifications are verified over their raw query string.
package spplus

import (
	"github.com/mwork/eopayment/internal/pkg/gateway"
	"github.com/mwork/eopayment/internal/pkg/validator"
)

const (
	ServiceURL = "https://www.spplus.net/paiement/init.do"

	DefaultLangue   = "FR"
	DefaultTaxe     = "0.00"
	DefaultModalite = "1x"
	DefaultMoyen    = "CBS"
	DefaultDevise   = "978"
)

// Config holds SPPlus configuration
type Config struct {
	Cle        string `json:"cle" validate:"required,hexkey"`   // Encrypted merchant key, hex
	Siret      string `json:"siret" validate:"required,siret"` // Siret plus site number
	Langue     string `json:"langue" validate:"omitempty,len=2"`
	Taxe       string `json:"taxe"`
	Modalite   string `json:"modalite"` // 1x, 2x, 3x, xx, nx, "/" separated
	Moyen      string `json:"moyen"`    // AUR, AMX, CBS, CGA, CHK, DIN, PRE, "/" separated
	Devise     string `json:"devise" validate:"omitempty,numeric,len=3"`
	ServiceURL string `json:"service_url" validate:"omitempty,url"`
}

func (Config) Kind() gateway.Kind {
	return gateway.KindSPPlus
}

func (c Config) withDefaults() Config {
	if c.Langue == "" {
		c.Langue = DefaultLangue
	}
	if c.Taxe == "" {
		c.Taxe = DefaultTaxe
	}
	if c.Modalite == "" {
		c.Modalite = DefaultModalite
	}
	if c.Moyen == "" {
		c.Moyen = DefaultMoyen
	}
	if c.Devise == "" {
		c.Devise = DefaultDevise
	}
	if c.ServiceURL == "" {
		c.ServiceURL = ServiceURL
	}
	return c
}

// configured returns the request fields set by the configuration
func (c Config) configured() gateway.Fields {
	return gateway.Fields{
		{Name: "siret", Value: c.Siret},
		{Name: "langue", Value: c.Langue},
		{Name: "devise", Value: c.Devise},
		{Name: "taxe", Value: c.Taxe},
		{Name: "modalite", Value: c.Modalite},
		{Name: "moyen", Value: c.Moyen},
	}
}

// Validate checks the configuration and the merchant key
func (c Config) Validate() error {
	if errs := validator.Check(c); len(errs) > 0 {
		return &gateway.ConfigError{Backend: gateway.KindSPPlus, Field: errs[0].Field, Reason: errs[0].Message}
	}
	if _, err := DecryptKey(c.Cle); err != nil {
		return &gateway.ConfigError{Backend: gateway.KindSPPlus, Field: "cle", Reason: err.Error()}
	}
	return nil
}

// Describe documents the configuration options
func Describe() gateway.Description {
	return gateway.Description{
		Caption: "SPPlus payment service of French bank Caisse d'epargne",
		Options: []gateway.OptionDetail{
			{Name: "cle", Caption: "Secret key, an hexadecimal number", Required: true},
			{Name: "siret", Caption: "Siret of the entreprise augmented with the site number, example: 00000000000001-01", Required: true},
			{Name: "langue", Caption: "Language of the customers", Default: DefaultLangue},
			{Name: "taxe", Caption: "Taxes", Default: DefaultTaxe},
			{Name: "modalite", Caption: `1x, 2x, 3x, xx, nx (if multiple separated by "/")`, Default: DefaultModalite},
			{Name: "moyen", Caption: `AUR, AMX, CBS, CGA, CHK, DIN, PRE (if multiple separated by "/")`, Default: DefaultMoyen},
		},
	}
}
