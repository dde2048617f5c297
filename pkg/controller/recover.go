package controller

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/askiada/go-causality/pkg/logger"
)

// WithRecover answers 500 when next panics and logs the panic value. http.ErrAbortHandler is
// re-raised so the server can abort the connection.
func WithRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			p := recover()
			if p == nil {
				return
			}

			if p == http.ErrAbortHandler { //nolint: errorlint,err113
				panic(p)
			}

			logger.Error(r.Context(), "captured panic in handler", zap.Any("panic", p), zap.String("url", r.URL.String()))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}()

		next.ServeHTTP(w, r)
	})
}
