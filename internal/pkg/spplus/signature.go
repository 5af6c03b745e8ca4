package spplus

import (
	"crypto/cipher"
	"crypto/des"
	"crypto/hmac"
	"crypto/sha1"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/mwork/eopayment/internal/pkg/gateway"
)

// The merchant key delivered by the bank is DES-CBC encrypted with this pair
var (
	keyDESKey = []byte{0x45, 0x1f, 0xba, 0x4f, 0x4c, 0x3f, 0xd4, 0x97}
	keyDESIV  = []byte{0x30, 0x78, 0x30, 0x62, 0x2c, 0x30, 0x78, 0x30}
)

const signingKeySize = 20

// RequestSignatureFields are the request fields covered by the hmac, in order
var RequestSignatureFields = []string{"siret", "reference", "langue", "devise", "montant", "taxe", "validite"}

// DecryptKey turns the hex encoded merchant key (spaces allowed) into the
// HMAC signing key
func DecryptKey(cle string) ([]byte, error) {
	raw, err := hex.DecodeString(strings.ReplaceAll(cle, " ", ""))
	if err != nil {
		return nil, fmt.Errorf("decode key: %w", err)
	}
	if len(raw) < signingKeySize || len(raw)%des.BlockSize != 0 {
		return nil, fmt.Errorf("key must be a multiple of %d bytes and at least %d bytes long, got %d", des.BlockSize, signingKeySize, len(raw))
	}
	block, err := des.NewCipher(keyDESKey)
	if err != nil {
		return nil, err
	}
	plain := make([]byte, len(raw))
	cipher.NewCBCDecrypter(block, keyDESIV).CryptBlocks(plain, raw)
	return plain[:signingKeySize], nil
}

// Sign returns the uppercase hex HMAC-SHA1 of data
func Sign(key []byte, data string) string {
	mac := hmac.New(sha1.New, key)
	mac.Write([]byte(data))
	return strings.ToUpper(hex.EncodeToString(mac.Sum(nil)))
}

// SignRequest signs an outbound payment request. Missing fields count as empty.
func SignRequest(key []byte, fields gateway.Fields) string {
	var b strings.Builder
	for _, name := range RequestSignatureFields {
		b.WriteString(fields.Get(name))
	}
	return Sign(key, b.String())
}

// SignQuery signs every value of a raw query string in wire order, duplicates
// and blank values included. Pairs are split on '&' only.
func SignQuery(key []byte, rawQuery string) string {
	var b strings.Builder
	for _, pair := range strings.Split(rawQuery, "&") {
		_, value, _ := strings.Cut(pair, "=")
		b.WriteString(gateway.Unescape(value))
	}
	return Sign(key, b.String())
}

// Verify compares two hex digests case-insensitively in constant time
func Verify(expected, received string) bool {
	expected = strings.ToUpper(strings.TrimSpace(expected))
	received = strings.ToUpper(strings.TrimSpace(received))
	return subtle.ConstantTimeCompare([]byte(expected), []byte(received)) == 1
}
