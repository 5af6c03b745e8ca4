package sips

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/mwork/eopayment/internal/pkg/gateway"
	"github.com/mwork/eopayment/internal/pkg/logger"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type fixedIDs struct {
	prefixes []string
}

func (f *fixedIDs) New(ctx context.Context, length int, alphabet string, prefixes ...string) (string, error) {
	f.prefixes = prefixes
	return "123456", nil
}

type fakeRunner struct {
	output string
	err    error
	path   string
	args   []string
}

func (r *fakeRunner) Run(ctx context.Context, path string, args []string) (string, error) {
	r.path = path
	r.args = args
	return r.output, r.err
}

func (r *fakeRunner) arg(name string) (string, bool) {
	for _, a := range r.args {
		if k, v, _ := strings.Cut(a, "="); k == name {
			return v, true
		}
	}
	return "", false
}

func newTestClient(t *testing.T, runner Runner) (*Client, *fixedIDs) {
	t.Helper()
	ids := &fixedIDs{}
	c, err := NewClient(Config{BinPath: "/opt/sips/bin", PathFile: "/opt/sips/param/pathfile"}, ids, runner)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return c, ids
}

func TestRequest_ReturnsForm(t *testing.T) {
	runner := &fakeRunner{output: "!0!!<form action=\"https://payment.sips\">!<input/></form>!\n"}
	c, ids := newTestClient(t, runner)

	req, err := c.Request(context.Background(), decimal.RequireFromString("10.5"), gateway.RequestOptions{
		Email:   "bob@example.com",
		NextURL: "https://my-site.com/retour",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Kind != gateway.ArtifactHTML {
		t.Fatalf("expected html artifact, got %v", req.Kind)
	}
	if req.Artifact != "<form action=\"https://payment.sips\">!<input/></form>" {
		t.Fatalf("unexpected form: %q", req.Artifact)
	}
	if len(req.CorrelationID) != 32 || strings.Contains(req.CorrelationID, "-") {
		t.Fatalf("expected uuid hex order id, got %q", req.CorrelationID)
	}
	if runner.path != filepath.Join("/opt/sips/bin", "request") {
		t.Fatalf("unexpected program: %s", runner.path)
	}
	if strings.Join(ids.prefixes, ",") != "sips,"+DefaultMerchantID {
		t.Fatalf("unexpected namespace: %v", ids.prefixes)
	}

	want := map[string]string{
		"merchant_id":       DefaultMerchantID,
		"merchant_country":  "fr",
		"currency_code":     "978",
		"transaction_id":    "123456",
		"order_id":          req.CorrelationID,
		"amount":            "1050",
		"customer_email":    "bob@example.com",
		"normal_return_url": "https://my-site.com/retour",
		"pathfile":          "/opt/sips/param/pathfile",
	}
	for k, v := range want {
		if got, ok := runner.arg(k); !ok || got != v {
			t.Fatalf("arg %s: want %q, got %q (%v)", k, v, got, runner.args)
		}
	}
}

func TestRequest_NonZeroCode(t *testing.T) {
	runner := &fakeRunner{output: "!-1!Error: merchant_id is not valid!!"}
	c, _ := newTestClient(t, runner)

	_, err := c.Request(context.Background(), decimal.RequireFromString("10"), gateway.RequestOptions{})
	var pe *gateway.ExternalProcessError
	if !errors.As(err, &pe) {
		t.Fatalf("expected external process error, got %v", err)
	}
	if pe.Code != "-1" || pe.Executable != "request" || !strings.Contains(pe.Error(), "merchant_id is not valid") {
		t.Fatalf("unexpected error: %v", pe)
	}
	if !errors.Is(err, gateway.ErrExternalProcess) {
		t.Fatal("expected ErrExternalProcess")
	}
}

func TestRequest_RunnerFailure(t *testing.T) {
	c, _ := newTestClient(t, &fakeRunner{err: errors.New("exec: not found")})
	if _, err := c.Request(context.Background(), decimal.RequireFromString("10"), gateway.RequestOptions{}); !errors.Is(err, gateway.ErrExternalProcess) {
		t.Fatalf("expected external process error, got %v", err)
	}
}

func TestRequest_ConfiguredParams(t *testing.T) {
	runner := &fakeRunner{output: "!0!!<form/>!"}
	ids := &fixedIDs{}
	c, err := NewClient(Config{
		BinPath:    "/opt/sips/bin",
		MerchantID: "082584341411111",
		Params:     map[string]string{"language": "en", "automatic_response_url": "https://my-site.com/notify"},
	}, ids, runner)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := c.Request(context.Background(), decimal.RequireFromString("1"), gateway.RequestOptions{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, _ := runner.arg("language"); v != "en" {
		t.Fatalf("configured param missing: %v", runner.args)
	}
	if v, _ := runner.arg("merchant_id"); v != "082584341411111" {
		t.Fatalf("unexpected merchant: %v", runner.args)
	}
	if _, ok := runner.arg("pathfile"); ok {
		t.Fatal("pathfile must be omitted when not configured")
	}
	if ids.prefixes[1] != "082584341411111" {
		t.Fatalf("namespace must use the merchant id: %v", ids.prefixes)
	}
}

func TestNewClient_ConfigErrors(t *testing.T) {
	cases := []Config{
		{},
		{BinPath: "/opt", Params: map[string]string{"hmac": "x"}},
		{BinPath: "/opt", CurrencyCode: "EUR"},
		{BinPath: "/opt", Params: map[string]string{"language": "english"}},
		{BinPath: "/opt", Params: map[string]string{"transaction_id": "000001"}},
	}
	for _, cfg := range cases {
		if _, err := NewClient(cfg, &fixedIDs{}, &fakeRunner{}); !errors.Is(err, gateway.ErrConfiguration) {
			t.Fatalf("config %+v: expected configuration error, got %v", cfg, err)
		}
	}
}

func responseOutput(code, responseCode, bankCode, means string) string {
	values := map[string]string{
		"code":               code,
		"merchant_id":        DefaultMerchantID,
		"merchant_country":   "fr",
		"amount":             "1050",
		"transaction_id":     "123456",
		"payment_means":      means,
		"response_code":      responseCode,
		"authorisation_id":   "A1B2C3",
		"currency_code":      "978",
		"bank_response_code": bankCode,
		"order_id":           "0f1e2d3c4b5a69788796a5b4c3d2e1f0",
	}
	tokens := make([]string, len(ResponseFields))
	for i, name := range ResponseFields {
		tokens[i] = values[name]
	}
	return "!" + strings.Join(tokens, "!") + "!\n"
}

func TestResponse_Authorised(t *testing.T) {
	runner := &fakeRunner{output: responseOutput("0", "00", "00", "CB")}
	c, _ := newTestClient(t, runner)

	resp, err := c.Response(context.Background(), "DATA=2020333732603028502c2360532d5328532d2360522d4360502c4360502c3334502c3330512d2324562d5334592c3360522d")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if runner.path != filepath.Join("/opt/sips/bin", "response") {
		t.Fatalf("unexpected program: %s", runner.path)
	}
	if v, _ := runner.arg("message"); !strings.HasPrefix(v, "2020333732") {
		t.Fatalf("DATA not forwarded: %v", runner.args)
	}
	if !resp.Authoritative() {
		t.Fatalf("expected signed success, got %+v", resp)
	}
	if resp.OrderID != "0f1e2d3c4b5a69788796a5b4c3d2e1f0" || resp.TransactionID != "A1B2C3" {
		t.Fatalf("unexpected ids: %+v", resp)
	}
	if resp.BankData[gateway.BankIDKey] != "A1B2C3" || resp.BankData["amount"] != "1050" {
		t.Fatalf("unexpected bank data: %v", resp.BankData)
	}
	if resp.BankStatus != "00: Autorisation acceptée - 00: transaction approuvée ou traitée avec succès" {
		t.Fatalf("unexpected status: %s", resp.BankStatus)
	}
}

func TestResponse_BankTableByPaymentMeans(t *testing.T) {
	tests := []struct {
		means string
		code  string
		want  string
	}{
		{"CB", "51", "51: provision insuffisante"},
		{"VISA", "51", "51: provision insuffisante"},
		{"AMEX", "02", "02: Dépassement de plafond"},
		{"FINAREF", "16", "16: Provision insuffisante"},
		{"FINAREF", "42", "42: " + gateway.UnknownCode},
	}
	for _, tt := range tests {
		c, _ := newTestClient(t, &fakeRunner{output: responseOutput("0", "05", tt.code, tt.means)})
		resp, err := c.Response(context.Background(), "DATA=abc")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Result || resp.SignedResult != nil {
			t.Fatalf("refusal must not be a success: %+v", resp)
		}
		if !strings.HasSuffix(resp.BankStatus, tt.want) {
			t.Fatalf("%s %s: unexpected status %s", tt.means, tt.code, resp.BankStatus)
		}
	}
}

func TestResponse_MiddlewareRejectsPayload(t *testing.T) {
	out := "!-1!invalid message!" + strings.Repeat("!", len(ResponseFields)-3) + "\n"
	c, _ := newTestClient(t, &fakeRunner{output: out})
	resp, err := c.Response(context.Background(), "DATA=tampered")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Signed || resp.SignedResult != nil || resp.Result {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if !strings.Contains(resp.BankStatus, "invalid message") || !strings.HasSuffix(resp.BankStatus, gateway.InvalidSignature) {
		t.Fatalf("unexpected status: %s", resp.BankStatus)
	}
}

func TestResponse_MissingData(t *testing.T) {
	c, _ := newTestClient(t, &fakeRunner{})
	if _, err := c.Response(context.Background(), "foo=bar"); !errors.Is(err, gateway.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestResponse_Idempotent(t *testing.T) {
	c, _ := newTestClient(t, &fakeRunner{output: responseOutput("0", "00", "00", "CB")})
	first, _ := c.Response(context.Background(), "DATA=abc")
	second, _ := c.Response(context.Background(), "DATA=abc")
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("reparsing changed the record:\n%+v\n%+v", first, second)
	}
}

func TestExecRunner_RunsProgram(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "request")
	if err := os.WriteFile(script, []byte("#!/bin/sh\necho \"!0!!<form>$1</form>!\"\n"), 0755); err != nil {
		t.Fatalf("write script: %v", err)
	}
	c, err := NewClient(Config{BinPath: dir}, &fixedIDs{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	req, err := c.Request(context.Background(), decimal.RequireFromString("1"), gateway.RequestOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Artifact != "<form>merchant_id="+DefaultMerchantID+"</form>" {
		t.Fatalf("unexpected form: %q", req.Artifact)
	}
}

func TestExecRunner_MissingProgram(t *testing.T) {
	c, err := NewClient(Config{BinPath: t.TempDir()}, &fixedIDs{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := c.Request(context.Background(), decimal.RequireFromString("1"), gateway.RequestOptions{}); !errors.Is(err, gateway.ErrExternalProcess) {
		t.Fatalf("expected external process error, got %v", err)
	}
}

func TestResponse_MalformedEscapeReachesMiddleware(t *testing.T) {
	out := "!-1!invalid message!" + strings.Repeat("!", len(ResponseFields)-3) + "\n"
	runner := &fakeRunner{output: out}
	c, _ := newTestClient(t, runner)
	resp, err := c.Response(context.Background(), "DATA=%zz")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Signed || resp.SignedResult != nil {
		t.Fatalf("expected unsigned record, got %+v", resp)
	}
	if v, _ := runner.arg("message"); v != "%zz" {
		t.Fatalf("raw DATA must be passed through: %v", runner.args)
	}
}

func TestRequest_RejectsInvalidFields(t *testing.T) {
	runner := &fakeRunner{output: "!0!!<form/>!"}
	c, _ := newTestClient(t, runner)
	tests := []struct {
		opts  gateway.RequestOptions
		field string
	}{
		{gateway.RequestOptions{Email: strings.Repeat("x", 5000) + "&<>"}, "customer_email"},
		{gateway.RequestOptions{Email: "bob message=x@example.com"}, "customer_email"},
		{gateway.RequestOptions{NextURL: "https://my-site.com/" + strings.Repeat("a", 600)}, "normal_return_url"},
	}
	for _, tt := range tests {
		_, err := c.Request(context.Background(), decimal.RequireFromString("10"), tt.opts)
		var ve *gateway.ValidationError
		if !errors.As(err, &ve) || ve.Field != tt.field {
			t.Fatalf("%+v: expected %s validation error, got %v", tt.opts, tt.field, err)
		}
	}
	if runner.path != "" {
		t.Fatalf("request program must not run on invalid input: %v", runner.args)
	}
}

func TestResponse_LogsRefusalKind(t *testing.T) {
	tests := []struct {
		means string
		code  string
		want  string
	}{
		{"CB", "43", `"refusal":"fraud"`},
		{"VISA", "91", `"refusal":"technical"`},
		{"CB", "51", ""},
		{"AMEX", "43", ""},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		log := zerolog.New(&buf)
		ctx := logger.WithContext(context.Background(), &log)

		c, _ := newTestClient(t, &fakeRunner{output: responseOutput("0", "05", tt.code, tt.means)})
		if _, err := c.Response(ctx, "DATA=abc"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tt.want == "" && strings.Contains(buf.String(), "refusal") {
			t.Fatalf("%s %s: unexpected refusal log %s", tt.means, tt.code, buf.String())
		}
		if tt.want != "" && !strings.Contains(buf.String(), tt.want) {
			t.Fatalf("%s %s: expected %s, got %s", tt.means, tt.code, tt.want, buf.String())
		}
	}
}
