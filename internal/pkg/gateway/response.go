package gateway

import (
	"context"
	"fmt"
)

// BankIDKey is the uniform BankData key holding the bank reconciliation id
const BankIDKey = "bank_transaction_id"

// UnknownCode is rendered for result codes missing from a bank table
const UnknownCode = "Unknown code"

// InvalidSignature is appended to the bank status when authentication fails
const InvalidSignature = "invalid signature"

// RequestOptions are the optional caller inputs of a payment request
type RequestOptions struct {
	Email   string
	NextURL string
}

// Request is the outbound artifact of a payment request
type Request struct {
	// CorrelationID must be stored by the caller to match the notification
	CorrelationID string
	Kind          ArtifactKind
	// Artifact is a redirect URL or HTML markup depending on Kind
	Artifact string
	Fields   Fields
}

// Response is the normalized record of a bank notification.
// Parsing the same payload twice yields equal records.
type Response struct {
	// Result is the outcome declared by the bank, authenticated or not
	Result bool
	// SignedResult is set only when Result is a success and the payload was
	// authenticated. Callers must act on this field, never on Result alone.
	SignedResult *bool
	// Signed reports whether the payload authentication succeeded
	Signed   bool
	BankData map[string]string
	// ReturnContent must be sent back verbatim when the bank calls the
	// merchant directly; empty otherwise
	ReturnContent string
	BankStatus    string
	// OrderID is the merchant side correlation id
	OrderID string
	// TransactionID is the bank side reconciliation id
	TransactionID string
}

// SignedResultFor computes the SignedResult field
func SignedResultFor(result, signed bool) *bool {
	if !result || !signed {
		return nil
	}
	ok := true
	return &ok
}

// Authoritative reports whether the payment can be considered done
func (r *Response) Authoritative() bool {
	return r.SignedResult != nil && *r.SignedResult
}

// FormatStatus renders "<code>: <text>" using table, falling back to UnknownCode
func FormatStatus(code string, table map[string]string) string {
	text, ok := table[code]
	if !ok {
		text = UnknownCode
	}
	return fmt.Sprintf("%s: %s", code, text)
}

// IDGenerator issues transaction ids unique per day and namespace
type IDGenerator interface {
	New(ctx context.Context, length int, alphabet string, prefixes ...string) (string, error)
}
