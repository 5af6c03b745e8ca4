package systempay

import (
	"time"

	"github.com/mwork/eopayment/internal/pkg/schema"
)

// parameters lists the request fields of a protocol version. Names are
// unprefixed; v2 adds the vads_ prefix.
func parameters(version Version, now func() time.Time) schema.Schema {
	p := version.Prefix()
	s := schema.Schema{
		// amount in cents
		{Name: p + "amount", Type: schema.Numeric, Code: 9, MaxLength: 12, Required: true, Sign: true},
		{Name: p + "capture_delay", Type: schema.Numeric, Code: 6, MaxLength: 3, Required: version == V1, Sign: true, Default: schema.Static("")},
		{Name: p + "contrib", Type: schema.Text, Code: 31, MaxLength: 255, Default: schema.Static("eopayment")},
		// ISO 4217, euro
		{Name: p + "currency", Type: schema.Numeric, Code: 10, Length: 3, Required: true, Sign: true, Default: schema.Static("978")},
		{Name: p + "cust_address", Type: schema.Alnum, Code: 19, MaxLength: 255},
		// ISO 3166
		{Name: p + "cust_country", Type: schema.Alpha, Code: 22, Length: 2, Default: schema.Static("FR")},
		{Name: p + "cust_email", Type: schema.AlnumAt, Code: 15, MaxLength: 127},
		{Name: p + "cust_id", Type: schema.Alnum, Code: 16, MaxLength: 63},
		{Name: p + "cust_name", Type: schema.Alnum, Code: 18, MaxLength: 127},
		{Name: p + "cust_phone", Type: schema.Alnum, Code: 23, MaxLength: 63},
		{Name: p + "cust_title", Type: schema.Alnum, Code: 17, MaxLength: 63},
		{Name: p + "cust_city", Type: schema.Alnum, Code: 21, MaxLength: 63},
		{Name: p + "cust_zip", Type: schema.Alnum, Code: 20, MaxLength: 63},
		{Name: p + "ctx_mode", Type: schema.Alpha, Code: 11, Required: true, Sign: true, Choices: []string{CtxTest, CtxProduction}},
		// ISO 639
		{Name: p + "language", Type: schema.Alpha, Code: 12, Length: 2, Default: schema.Static("fr")},
		{Name: p + "order_id", Type: schema.AlnumDash, Code: 13, MaxLength: 32},
		{Name: p + "order_info", Type: schema.Alnum, Code: 14, MaxLength: 255},
		{Name: p + "order_info2", Type: schema.Alnum, Code: 14, MaxLength: 255},
		{Name: p + "order_info3", Type: schema.Alnum, Code: 14, MaxLength: 255},
		{Name: p + "payment_cards", Type: schema.AlnumSemicolon, Code: 8, MaxLength: 127, Required: version == V1, Sign: true, Default: schema.Static("")},
		{Name: p + "payment_config", Type: schema.Any, Code: 7, Required: true, Sign: true, Default: schema.Static("SINGLE"), Choices: []string{"SINGLE", "MULTI"}},
		{Name: p + "site_id", Type: schema.Numeric, Code: 2, Length: 8, Required: true, Sign: true},
		{Name: p + "theme_config", Type: schema.Text, Code: 32, MaxLength: 255},
		{Name: p + "trans_date", Type: schema.Numeric, Code: 4, Length: 14, Required: true, Sign: true, Default: schema.Now14(now)},
		{Name: p + "trans_id", Type: schema.Numeric, Code: 3, Length: 6, Required: true, Sign: true},
		{Name: p + "validation_mode", Type: schema.Numeric, Code: 5, MaxLength: 1, Required: version == V1, Sign: true, Default: schema.Static(""), Choices: []string{"", "0", "1"}},
		{Name: p + "version", Type: schema.Alnum, Code: 1, Required: true, Sign: true, Default: schema.Static(string(version)), Choices: []string{string(version)}},
		{Name: p + "url_success", Type: schema.Text, Code: 24, MaxLength: 127},
		{Name: p + "url_referral", Type: schema.Text, Code: 26, MaxLength: 127},
		{Name: p + "url_refused", Type: schema.Text, Code: 25, MaxLength: 127},
		{Name: p + "url_cancel", Type: schema.Text, Code: 27, MaxLength: 127},
		{Name: p + "url_error", Type: schema.Text, Code: 29, MaxLength: 127},
		{Name: p + "url_return", Type: schema.Text, Code: 28, MaxLength: 127},
		{Name: p + "user_info", Type: schema.Text, Code: 61, MaxLength: 255},
		{Name: p + "contracts", Type: schema.Text, Code: 62, MaxLength: 255},
	}

	switch version {
	case V1:
		s = append(s,
			schema.Parameter{Name: "payment_src", Type: schema.Alpha, Code: 60, MaxLength: 5, Default: schema.Static(""), Choices: []string{"", "BO", "MOTO", "CC", "OTHER"}},
		)
	case V2:
		s = append(schema.Schema{
			{Name: "vads_action_mode", Type: schema.Any, Code: 47, Required: true, Default: schema.Static("INTERACTIVE"), Choices: []string{"SILENT", "INTERACTIVE"}},
			{Name: "vads_page_action", Type: schema.Any, Code: 46, Required: true, Default: schema.Static("PAYMENT"), Choices: []string{"PAYMENT"}},
			{Name: "vads_return_mode", Type: schema.Any, Code: 48, Default: schema.Static("NONE"), Choices: []string{"", "NONE", "POST", "GET"}},
		}, s...)
	}
	return s
}
