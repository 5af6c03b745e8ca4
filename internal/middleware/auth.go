package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/mwork/eopayment/internal/pkg/jwt"
	"github.com/mwork/eopayment/internal/pkg/logger"
	"github.com/mwork/eopayment/internal/pkg/response"
)

type contextKey string

const MerchantIDKey contextKey = "merchant_id"

// Auth returns middleware that requires a valid merchant bearer token.
// Bank notification routes must not be wrapped: banks send no token.
func Auth(jwtService *jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				response.Unauthorized(w, "Missing authorization header")
				return
			}

			scheme, token, ok := strings.Cut(authHeader, " ")
			if !ok || !strings.EqualFold(scheme, "bearer") || token == "" {
				response.Unauthorized(w, "Invalid authorization header format")
				return
			}

			claims, err := jwtService.ValidateMerchantToken(token)
			if err != nil {
				if errors.Is(err, jwt.ErrExpiredToken) {
					response.Unauthorized(w, "Token expired")
				} else {
					response.Unauthorized(w, "Invalid token")
				}
				return
			}

			ctx := context.WithValue(r.Context(), MerchantIDKey, claims.MerchantID)
			log := logger.FromContext(ctx).With().Str("merchant_id", claims.MerchantID).Logger()
			ctx = logger.WithContext(ctx, &log)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetMerchantID extracts the authenticated merchant from context
func GetMerchantID(ctx context.Context) string {
	if id, ok := ctx.Value(MerchantIDKey).(string); ok {
		return id
	}
	return ""
}
