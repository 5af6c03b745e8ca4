package systempay

import (
	"crypto/sha1"
	"crypto/subtle"
	"encoding/hex"
	"sort"
	"strings"

	"github.com/mwork/eopayment/internal/pkg/gateway"
)

// SignatureField carries the digest in both directions
const SignatureField = "signature"

// V1 signs explicit field lists, in this order
var (
	RequestSignatureFieldsV1 = []string{
		"version", "site_id", "ctx_mode", "trans_id", "trans_date",
		"validation_mode", "capture_delay", "payment_config", "payment_cards",
		"amount", "currency",
	}
	ResponseSignatureFieldsV1 = []string{
		"version", "site_id", "ctx_mode", "trans_id", "trans_date",
		"validation_mode", "capture_delay", "payment_config", "card_brand",
		"card_number", "amount", "currency", "auth_mode", "auth_result",
		"auth_number", "warranty_result", "payment_certificate", "result",
	}
	// server to server notifications also cover the hash field
	S2SResponseSignatureFieldsV1 = append(append([]string(nil), ResponseSignatureFieldsV1...), "hash")
)

// Sign is the SHA-1 hex digest of the values joined by '+', then '+secret'
func Sign(values []string, secret string) string {
	h := sha1.Sum([]byte(strings.Join(values, "+") + "+" + secret))
	return hex.EncodeToString(h[:])
}

// SignPrefixed signs every field whose name starts with prefix, sorted by name
func SignPrefixed(fields gateway.Fields, prefix, secret string) string {
	signed := make(gateway.Fields, 0, len(fields))
	for _, f := range fields {
		if strings.HasPrefix(f.Name, prefix) {
			signed = append(signed, f)
		}
	}
	sort.SliceStable(signed, func(i, j int) bool { return signed[i].Name < signed[j].Name })

	values := make([]string, len(signed))
	for i, f := range signed {
		values[i] = f.Value
	}
	return Sign(values, secret)
}

// SignList signs the named fields in order. Missing fields count as empty.
func SignList(fields gateway.Fields, names []string, secret string) string {
	values := make([]string, len(names))
	for i, name := range names {
		values[i] = fields.Get(name)
	}
	return Sign(values, secret)
}

// Verify compares two hex digests case-insensitively in constant time
func Verify(expected, received string) bool {
	expected = strings.ToLower(strings.TrimSpace(expected))
	received = strings.ToLower(strings.TrimSpace(received))
	return subtle.ConstantTimeCompare([]byte(expected), []byte(received)) == 1
}

// requestSignature signs an outbound field set for the configured version
func (c *Client) requestSignature(fields gateway.Fields, secret string) string {
	if c.config.Version == V1 {
		return SignList(fields, RequestSignatureFieldsV1, secret)
	}
	return SignPrefixed(fields, "vads_", secret)
}

// responseSignature signs an inbound field set for the configured version
func (c *Client) responseSignature(fields gateway.Fields, secret string) string {
	if c.config.Version == V1 {
		if fields.Has("hash") {
			return SignList(fields, S2SResponseSignatureFieldsV1, secret)
		}
		return SignList(fields, ResponseSignatureFieldsV1, secret)
	}
	return SignPrefixed(fields, "vads_", secret)
}
