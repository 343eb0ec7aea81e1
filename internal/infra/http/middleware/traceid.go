package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/xavierca1/ligue-landing/internal/logger"
)

const TraceIDHeader = "X-Trace-ID"

// TraceID anexa ao contexto um logger filho com trace_id (do header ou um uuid novo).
func TraceID(l *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID := r.Header.Get(TraceIDHeader)
			if traceID == "" {
				traceID = uuid.NewString()
			}

			child := l.GetChildLogger()
			child.UpdateContext(func(c zerolog.Context) zerolog.Context {
				return c.Str("trace_id", traceID)
			})
			r = r.WithContext(child.WithContext(r.Context()))

			w.Header().Set(TraceIDHeader, traceID)
			next.ServeHTTP(w, r)
		})
	}
}
