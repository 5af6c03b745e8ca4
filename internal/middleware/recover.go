package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/mwork/eopayment/internal/pkg/logger"
	"github.com/mwork/eopayment/internal/pkg/response"
)

// Recover turns a panic into a 500. A bank notification that panics gets no
// acknowledgement, so the bank retries it later.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			logger.FromContext(r.Context()).Error().
				Str("panic", fmt.Sprint(rec)).
				Bytes("stack", debug.Stack()).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("merchant_id", GetMerchantID(r.Context())).
				Msg("Panic recovered")

			response.InternalError(w)
		}()

		next.ServeHTTP(w, r)
	})
}
