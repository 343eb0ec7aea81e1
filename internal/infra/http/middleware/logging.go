package middleware

import (
	"net/http"
	"time"

	"github.com/xavierca1/ligue-landing/internal/logger"
)

func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)
		start := time.Now()

		rw := wrap(w)
		next.ServeHTTP(rw, r)

		log.Info().
			Str("uri", r.RequestURI).
			Str("method", r.Method).
			Int("status", rw.statusCode).
			Dur("duration", time.Since(start)).
			Int("size", rw.size).
			Send()
	})
}
