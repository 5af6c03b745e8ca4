package config

import (
	"testing"
	"time"

	"github.com/mwork/eopayment/internal/pkg/dummy"
	"github.com/mwork/eopayment/internal/pkg/gateway"
	"github.com/mwork/eopayment/internal/pkg/sips"
	"github.com/mwork/eopayment/internal/pkg/systempay"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()
	if cfg.Port == "" || cfg.TxIDStore == "" {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoad_BackendSettings(t *testing.T) {
	t.Setenv("PAYMENT_BACKEND", "sips")
	t.Setenv("SIPS_BINPATH", "/opt/sips/bin")
	t.Setenv("SIPS_PARAMS", "language=en, automatic_response_url=https://example.com/notify")
	t.Setenv("SIPS_TIMEOUT", "5s")

	cfg := Load()
	backend, err := cfg.Backend()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sipsCfg, ok := backend.(sips.Config)
	if !ok {
		t.Fatalf("expected sips config, got %T", backend)
	}
	if sipsCfg.BinPath != "/opt/sips/bin" || sipsCfg.Timeout != 5*time.Second {
		t.Fatalf("unexpected config: %+v", sipsCfg)
	}
	if sipsCfg.Params["language"] != "en" || sipsCfg.Params["automatic_response_url"] != "https://example.com/notify" {
		t.Fatalf("unexpected params: %v", sipsCfg.Params)
	}
}

func TestBackend_SystemPayVersions(t *testing.T) {
	cfg := &Config{PaymentBackend: "systempayv1"}
	backend, err := cfg.Backend()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if backend.Kind() != gateway.KindSystemPayV1 || backend.(systempay.Config).Version != systempay.V1 {
		t.Fatalf("unexpected backend: %+v", backend)
	}

	cfg.PaymentBackend = "systempay"
	backend, err = cfg.Backend()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if backend.Kind() != gateway.KindSystemPayV2 {
		t.Fatalf("alias must select v2, got %s", backend.Kind())
	}
}

func TestBackend_Dummy(t *testing.T) {
	t.Setenv("PAYMENT_BACKEND", "DUMMY")
	t.Setenv("DUMMY_CONSIDER_ALL_RESPONSE_SIGNED", "true")
	backend, err := Load().Backend()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !backend.(dummy.Config).ConsiderAllResponseSigned {
		t.Fatalf("flag not loaded: %+v", backend)
	}
}

func TestBackend_Unknown(t *testing.T) {
	cfg := &Config{PaymentBackend: "paypal"}
	if _, err := cfg.Backend(); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestParseStringMap(t *testing.T) {
	m := parseStringMap("a=1,,b=x=y, c=")
	if len(m) != 3 || m["a"] != "1" || m["b"] != "x=y" || m["c"] != "" {
		t.Fatalf("unexpected map: %v", m)
	}
}

func TestLoad_JWTSettings(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_TOKEN_TTL", "1h")
	cfg := Load()
	if cfg.JWTSecret != "s3cret" || cfg.JWTTokenTTL != time.Hour {
		t.Fatalf("unexpected jwt settings: %q %v", cfg.JWTSecret, cfg.JWTTokenTTL)
	}

	t.Setenv("JWT_TOKEN_TTL", "forever")
	if cfg := Load(); cfg.JWTTokenTTL != 720*time.Hour {
		t.Fatalf("expected default ttl, got %v", cfg.JWTTokenTTL)
	}
}
