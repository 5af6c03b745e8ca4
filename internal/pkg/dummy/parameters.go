package dummy

import (
	"github.com/mwork/eopayment/internal/pkg/schema"
)

// parameters lists the query fields of the fake bank URL
func parameters() schema.Schema {
	return schema.Schema{
		{Name: "transaction_id", Type: schema.Alnum, Length: transactionIDLength, Required: true},
		{Name: "siret", Type: schema.AlnumDash, MaxLength: 32, Required: true},
		// amount in currency units
		{Name: "amount", Type: schema.Numeric, MaxLength: 12, Required: true},
		{Name: "email", Type: schema.AlnumAt, MaxLength: 127, Default: schema.Static("")},
		{Name: "return_url", Type: schema.Text, MaxLength: 255, Default: schema.Static("")},
		{Name: "direct_notification_url", Type: schema.Text, MaxLength: 255, Required: true},
		{Name: "origin", Type: schema.Text, MaxLength: 255, Required: true},
	}
}
