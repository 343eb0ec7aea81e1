package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS é permissivo: toda resposta sai com os headers abertos, e o go-chi/cors
// completa a negociação quando o browser manda Origin.
func CORS() func(http.Handler) http.Handler {
	negotiate := cors.Handler(cors.Options{
		AllowedOrigins:     []string{"*"},
		AllowedMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:     []string{"Content-Type", TraceIDHeader},
		ExposedHeaders:     []string{TraceIDHeader},
		MaxAge:             300,
		OptionsPassthrough: true,
	})

	return func(next http.Handler) http.Handler {
		h := negotiate(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hdr := w.Header()
			hdr.Set("Access-Control-Allow-Origin", "*")
			hdr.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			hdr.Set("Access-Control-Allow-Headers", "Content-Type")
			h.ServeHTTP(w, r)
		})
	}
}

// Preflight responde qualquer OPTIONS com 204 sem corpo, em qualquer path.
func Preflight(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
