package delivery

import (
	"net/http"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/rs/xid"
)

// RequestLogMiddleware — request id + лог запроса.
func RequestLogMiddleware(zl *logger.ZapLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := r.Header.Get("X-Request-Id")
			if reqID == "" {
				reqID = xid.New().String()
			}
			w.Header().Set("X-Request-Id", reqID)

			start := time.Now()
			next.ServeHTTP(w, r)

			zl.Log(logger.LogEntry{
				Level:   "info",
				Message: r.Method + " " + r.URL.Path + " " + reqID + " " + time.Since(start).String(),
				Service: "api",
			})
		})
	}
}
