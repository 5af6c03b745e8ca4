package systempay

import (
	"context"
	"strconv"
	"strings"

	"github.com/mwork/eopayment/internal/pkg/cb"
	"github.com/mwork/eopayment/internal/pkg/gateway"
	"github.com/mwork/eopayment/internal/pkg/logger"
)

// Response parses a notification, from the customer browser or server to
// server. The payload signature is recomputed, never trusted.
func (c *Client) Response(ctx context.Context, rawQuery string) (*gateway.Response, error) {
	fields := gateway.ParseQuery(rawQuery)
	p := c.config.Version.Prefix()

	authResult := fields.Get(p + "auth_result")
	result := cb.IsApproved(authResult)
	status := c.status(fields)

	signed := false
	if secret, ok := c.config.secret(fields.Get(p + "ctx_mode")); ok {
		signed = Verify(c.responseSignature(fields, secret), fields.Get(SignatureField))
	}
	if !signed {
		status = append(status, gateway.InvalidSignature)
	}

	bankData := fields.Map()
	bankData[gateway.BankIDKey] = fields.Get(p + "auth_number")

	resp := &gateway.Response{
		Result:        result,
		SignedResult:  gateway.SignedResultFor(result, signed),
		Signed:        signed,
		BankData:      bankData,
		BankStatus:    strings.Join(status, " - "),
		OrderID:       fields.Get(p+"trans_date") + "_" + fields.Get(p+"trans_id"),
		TransactionID: bankData[gateway.BankIDKey],
	}

	log := logger.FromContext(ctx)
	if kind := cb.RefusalKind(authResult); kind != "" {
		log.Warn().
			Str("order_id", resp.OrderID).
			Str("auth_result", authResult).
			Str("refusal", kind).
			Bool("signed", signed).
			Msg("systempay payment refused")
	}
	log.Debug().
		Str("order_id", resp.OrderID).
		Str("auth_result", authResult).
		Bool("signed", signed).
		Msg("systempay notification parsed")
	return resp, nil
}

// status translates auth_result, result and extra_result
func (c *Client) status(fields gateway.Fields) []string {
	p := c.config.Version.Prefix()
	var status []string
	if v, ok := fields.Lookup(p + "auth_result"); ok {
		status = append(status, gateway.FormatStatus(v, AuthResultCodes))
	}
	res, ok := fields.Lookup(p + "result")
	if !ok {
		return status
	}
	status = append(status, gateway.FormatStatus(res, ResultCodes))

	extra, hasExtra := fields.Lookup(p + "extra_result")
	switch {
	case !hasExtra:
	case res == ResultFormatError:
		// extra_result holds the code of the malformed field
		if code, err := strconv.Atoi(extra); err == nil {
			if param, ok := c.schema().ByCode(code); ok {
				status = append(status, "erreur dans le champ "+param.Name)
			}
		}
	case res == ResultSuccess || res == ResultRefused:
		status = append(status, gateway.FormatStatus(extra, ExtraResultCodes))
	}
	return status
}
