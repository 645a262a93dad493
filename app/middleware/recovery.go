package middleware

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Recovery turns a handler panic into a logged 500 with the failure envelope.
func Recovery(log *zap.SugaredLogger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if p := recover(); p != nil {
					if p == http.ErrAbortHandler {
						panic(p)
					}
					log.Errorw("panic in handler",
						"requestID", RequestID(r.Context()),
						"path", r.URL.Path,
						"panic", p,
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					w.Write([]byte(`{"success":false}`))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
