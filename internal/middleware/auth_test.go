package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mwork/eopayment/internal/pkg/jwt"
)

func TestAuthMiddlewareAllowsValidMerchantToken(t *testing.T) {
	jwtSvc := jwt.NewService("secret", time.Minute)
	token, err := jwtSvc.GenerateMerchantToken("m1")
	if err != nil {
		t.Fatalf("token gen failed: %v", err)
	}

	var merchant string
	protected := Auth(jwtSvc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		merchant = GetMerchantID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/payments/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	protected.ServeHTTP(w, req)

	if w.Code != http.StatusOK || merchant != "m1" {
		t.Fatalf("expected 200 for m1, got %d %q", w.Code, merchant)
	}
}

func TestAuthMiddlewareRejects(t *testing.T) {
	jwtSvc := jwt.NewService("secret", time.Minute)
	foreign, _ := jwt.NewService("other", time.Minute).GenerateMerchantToken("m1")

	protected := Auth(jwtSvc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))
	for _, header := range []string{"", "Bearer", "Basic abc", "Bearer " + foreign} {
		req := httptest.NewRequest(http.MethodPost, "/payments/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		protected.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %d", header, w.Code)
		}
	}
}
