package sips

import (
	"github.com/mwork/eopayment/internal/pkg/schema"
)

// parameters lists the arguments the request program accepts
func parameters() schema.Schema {
	return schema.Schema{
		{Name: "merchant_id", Type: schema.Numeric, MaxLength: 15, Required: true, Default: schema.Static(DefaultMerchantID)},
		// ISO 3166
		{Name: "merchant_country", Type: schema.Alpha, Length: 2, Required: true, Default: schema.Static(DefaultMerchantCountry)},
		// amount in cents
		{Name: "amount", Type: schema.Numeric, MaxLength: 12, Required: true},
		// ISO 4217, euro
		{Name: "currency_code", Type: schema.Numeric, Length: 3, Required: true, Default: schema.Static(DefaultCurrencyCode)},
		{Name: "transaction_id", Type: schema.Numeric, Length: transactionIDLength, Required: true},
		{Name: "order_id", Type: schema.AlnumDash, MaxLength: 32},
		{Name: "pathfile", Type: schema.Any, MaxLength: 255},
		{Name: "normal_return_url", Type: schema.Text, MaxLength: 512},
		{Name: "cancel_return_url", Type: schema.Text, MaxLength: 512},
		{Name: "automatic_response_url", Type: schema.Text, MaxLength: 512},
		{Name: "language", Type: schema.Alpha, Length: 2},
		{Name: "payment_means", Type: schema.Text, MaxLength: 128},
		{Name: "header_flag", Type: schema.Alpha, Choices: []string{"", "yes", "no"}},
		{Name: "capture_day", Type: schema.Numeric, MaxLength: 2},
		{Name: "capture_mode", Type: schema.Text, MaxLength: 20},
		{Name: "bgcolor", Type: schema.Text, MaxLength: 32},
		{Name: "block_align", Type: schema.Alpha, MaxLength: 10},
		{Name: "block_order", Type: schema.Text, MaxLength: 32},
		{Name: "textcolor", Type: schema.Text, MaxLength: 32},
		{Name: "receipt_complement", Type: schema.Text, MaxLength: 3072},
		{Name: "caddie", Type: schema.Text, MaxLength: 2048},
		{Name: "customer_id", Type: schema.Text, MaxLength: 19},
		{Name: "customer_email", Type: schema.AlnumAt, MaxLength: 128},
		{Name: "customer_ip_address", Type: schema.Text, MaxLength: 19},
		{Name: "data", Type: schema.Text, MaxLength: 2048},
		{Name: "return_context", Type: schema.Text, MaxLength: 256},
		{Name: "target", Type: schema.Text, MaxLength: 32},
	}
}
