package spplus

import (
	"context"
	"strings"

	"github.com/mwork/eopayment/internal/pkg/gateway"
	"github.com/mwork/eopayment/internal/pkg/logger"
)

// AckContent is returned to SPPlus when it calls the merchant directly
const AckContent = "spcheckok"

// Response parses a notification. The hmac, when present, must be the last
// parameter and covers every value before it.
func (c *Client) Response(ctx context.Context, rawQuery string) (*gateway.Response, error) {
	rawQuery = strings.TrimPrefix(strings.TrimSpace(rawQuery), "?")
	fields := gateway.ParseQuery(rawQuery)

	etat := fields.Get("etat")
	result := etat == EtatAccepted
	status := []string{gateway.FormatStatus(etat, ResponseCodes)}

	signed := false
	_, hasHMAC := fields.Lookup("hmac")
	if hasHMAC {
		signed = c.verify(rawQuery)
		if !signed {
			status = append(status, gateway.InvalidSignature)
		}
	}

	bankData := fields.Map()
	bankData[gateway.BankIDKey] = fields.Get("refsfp")

	resp := &gateway.Response{
		Result:        result,
		SignedResult:  gateway.SignedResultFor(result, signed),
		Signed:        signed,
		BankData:      bankData,
		BankStatus:    strings.Join(status, " - "),
		OrderID:       fields.Get("reference"),
		TransactionID: bankData[gateway.BankIDKey],
	}
	if hasHMAC {
		resp.ReturnContent = AckContent
	}

	logger.FromContext(ctx).Debug().
		Str("reference", resp.OrderID).
		Str("etat", etat).
		Bool("signed", signed).
		Msg("spplus notification parsed")
	return resp, nil
}

func (c *Client) verify(rawQuery string) bool {
	idx := strings.LastIndex(rawQuery, "&")
	if idx < 0 {
		return false
	}
	signedData, signature := rawQuery[:idx], rawQuery[idx+1:]
	_, received, ok := strings.Cut(signature, "=")
	if !ok {
		return false
	}
	return Verify(SignQuery(c.key, signedData), received)
}
