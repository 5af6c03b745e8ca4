package sips

import (
	"context"
	"strings"

	"github.com/mwork/eopayment/internal/pkg/gateway"
	"github.com/mwork/eopayment/internal/pkg/logger"
)

// DataField carries the encrypted notification
const DataField = "DATA"

// ResponseFields is the positional layout of the response program output
var ResponseFields = []string{
	"code", "error", "merchant_id", "merchant_country", "amount",
	"transaction_id", "payment_means", "transmission_date", "payment_time",
	"payment_date", "response_code", "payment_certificate", "authorisation_id",
	"currency_code", "card_number", "cvv_flag", "cvv_response_code",
	"bank_response_code", "complementary_code", "complementary_info",
	"return_context", "caddie", "receipt_complement", "merchant_language",
	"language", "customer_id", "order_id", "customer_email",
	"customer_ip_address", "capture_day", "capture_mode", "data",
}

// Response decrypts the DATA field with the response program. A zero code
// means the middleware authenticated the payload.
func (c *Client) Response(ctx context.Context, rawQuery string) (*gateway.Response, error) {
	form := gateway.ParseQuery(rawQuery)
	data, ok := form.Lookup(DataField)
	if !ok || data == "" {
		return nil, &gateway.ValidationError{Field: DataField, Reason: "notification has no DATA field"}
	}

	tokens, err := c.execute(ctx, "response", gateway.Fields{{Name: "message", Value: data}}, -1)
	if err != nil {
		return nil, err
	}

	bankData := make(map[string]string, len(ResponseFields)+1)
	for i, name := range ResponseFields {
		if i < len(tokens) {
			bankData[name] = tokens[i]
		} else {
			bankData[name] = ""
		}
	}
	bankData[gateway.BankIDKey] = bankData["authorisation_id"]

	signed := strings.TrimSpace(bankData["code"]) == "0"
	responseCode := bankData["response_code"]
	result := responseCode == RCAuthorised

	status := []string{gateway.FormatStatus(responseCode, ResponseCodes)}
	if bankCode := bankData["bank_response_code"]; bankCode != "" {
		status = append(status, gateway.FormatStatus(bankCode, BankResponseCodes(bankData["payment_means"])))
	}
	if !signed {
		if msg := bankData["error"]; msg != "" {
			status = append(status, msg)
		}
		status = append(status, gateway.InvalidSignature)
	}

	resp := &gateway.Response{
		Result:        result,
		SignedResult:  gateway.SignedResultFor(result, signed),
		Signed:        signed,
		BankData:      bankData,
		BankStatus:    strings.Join(status, " - "),
		OrderID:       bankData["order_id"],
		TransactionID: bankData["authorisation_id"],
	}

	log := logger.FromContext(ctx)
	if kind := refusalKind(bankData["bank_response_code"], bankData["payment_means"]); kind != "" {
		log.Warn().
			Str("order_id", resp.OrderID).
			Str("bank_response_code", bankData["bank_response_code"]).
			Str("refusal", kind).
			Bool("signed", signed).
			Msg("sips payment refused")
	}
	log.Debug().
		Str("order_id", resp.OrderID).
		Str("response_code", responseCode).
		Bool("signed", signed).
		Msg("sips notification parsed")
	return resp, nil
}
