package checkout

import (
	"github.com/mwork/eopayment/internal/pkg/gateway"
	"github.com/shopspring/decimal"
)

// CreatePaymentRequest is the body of POST /payments
type CreatePaymentRequest struct {
	Amount  decimal.Decimal `json:"amount"`
	Email   string          `json:"email,omitempty" validate:"omitempty,email"`
	NextURL string          `json:"next_url,omitempty" validate:"omitempty,url"`
}

// CreatePaymentResponse tells the caller where to send the customer
type CreatePaymentResponse struct {
	TransactionID string `json:"transaction_id"`
	Kind          string `json:"kind"`
	URL           string `json:"url,omitempty"`
	HTML          string `json:"html,omitempty"`
}

// Notification is the JSON rendering of a parsed bank notification
type Notification struct {
	Result        bool              `json:"result"`
	SignedResult  *bool             `json:"signed_result"`
	Signed        bool              `json:"signed"`
	OrderID       string            `json:"order_id"`
	TransactionID string            `json:"transaction_id"`
	BankStatus    string            `json:"bank_status"`
	BankData      map[string]string `json:"bank_data"`
	// Paid is true only for authenticated successes
	Paid bool `json:"paid"`
}

func newCreatePaymentResponse(req *gateway.Request) *CreatePaymentResponse {
	out := &CreatePaymentResponse{
		TransactionID: req.CorrelationID,
		Kind:          req.Kind.String(),
	}
	switch req.Kind {
	case gateway.ArtifactHTML:
		out.HTML = req.Artifact
	default:
		out.URL = req.Artifact
	}
	return out
}

func newNotification(resp *gateway.Response) *Notification {
	return &Notification{
		Result:        resp.Result,
		SignedResult:  resp.SignedResult,
		Signed:        resp.Signed,
		OrderID:       resp.OrderID,
		TransactionID: resp.TransactionID,
		BankStatus:    resp.BankStatus,
		BankData:      resp.BankData,
		Paid:          resp.Authoritative(),
	}
}
