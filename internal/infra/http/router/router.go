package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xavierca1/ligue-landing/internal/infra/http/handlers"
	"github.com/xavierca1/ligue-landing/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-landing/internal/logger"
)

// Handlers agrupa tudo que o router despacha.
type Handlers struct {
	Lead   *handlers.LeadHandler
	Health *handlers.HealthHandler
	Static http.Handler
}

// New monta o router: OPTIONS em qualquer path responde 204, toda resposta
// leva os headers de CORS e o que não for rota de API cai no estático.
func New(l *logger.Logger, h Handlers) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.TraceID(l))
	r.Use(middleware.Logging)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(middleware.CORS())
	r.Use(middleware.Preflight)

	r.Post("/submit", h.Lead.CaptureLead)
	r.Get("/healthz", h.Health.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.NotFound(h.Static.ServeHTTP)
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path == "/submit" {
			h.Lead.MethodNotAllowed(w, req)
			return
		}
		h.Static.ServeHTTP(w, req)
	})

	return r
}
