package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/mwork/eopayment/internal/pkg/logger"
	"github.com/mwork/eopayment/internal/pkg/response"
)

// RequestIDHeader carries the request id in both directions
const RequestIDHeader = response.RequestIDHeader

// RequestID adds a unique request ID to each request and a logger tagged
// with it to the request context
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Check if request ID already exists
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		w.Header().Set(RequestIDHeader, requestID)
		r.Header.Set(RequestIDHeader, requestID)

		log := logger.FromContext(r.Context()).With().Str("request_id", requestID).Logger()
		next.ServeHTTP(w, r.WithContext(logger.WithContext(r.Context(), &log)))
	})
}

// Timeout adds a timeout to requests
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, timeout, "Request timeout")
	}
}
