package spplus

import (
	"time"

	"github.com/mwork/eopayment/internal/pkg/schema"
)

// parameters lists the fields of a payment request URL, in wire order
func parameters(now func() time.Time) schema.Schema {
	return schema.Schema{
		{Name: "siret", Type: schema.AlnumDash, Length: 17, Required: true, Sign: true},
		{Name: "reference", Type: schema.Alnum, Length: referenceLength, Required: true, Sign: true},
		{Name: "langue", Type: schema.Alpha, Length: 2, Required: true, Sign: true, Default: schema.Static(DefaultLangue)},
		// ISO 4217, euro
		{Name: "devise", Type: schema.Numeric, Length: 3, Required: true, Sign: true, Default: schema.Static(DefaultDevise)},
		// amount in currency units, two decimals
		{Name: "montant", Type: schema.Numeric, MaxLength: 12, Required: true, Sign: true},
		{Name: "taxe", Type: schema.Numeric, MaxLength: 12, Required: true, Sign: true, Default: schema.Static(DefaultTaxe)},
		{Name: "validite", Type: schema.Text, Length: 10, Required: true, Sign: true, Default: schema.Tomorrow(now, "02/01/2006")},
		{Name: "version", Type: schema.Numeric, Required: true, Default: schema.Static("1"), Choices: []string{"1"}},
		{Name: "modalite", Type: schema.Text, MaxLength: 32, Default: schema.Static(DefaultModalite)},
		{Name: "moyen", Type: schema.Text, MaxLength: 32, Default: schema.Static(DefaultMoyen)},
		{Name: "email", Type: schema.AlnumAt, MaxLength: 100},
		{Name: "urlretour", Type: schema.Text, MaxLength: 255},
	}
}
