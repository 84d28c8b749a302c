package service

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Router builds the full HTTP handler chain: request-id + logging and
// rate-limit middleware wrapping the chi mux, following the teacher's
// split between route binding (router.go) and request handling
// (handler.go).
func Router(envelope *Envelope, broadcaster *Broadcaster, logger *zap.Logger, limiter *RateLimiter) http.Handler {
	h := &handlers{envelope: envelope, broadcaster: broadcaster}

	r := chi.NewRouter()
	r.Get("/healthz", h.health)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(limiter.Middleware)
		r.Post("/api/transaction", h.transaction)
	})
	if broadcaster != nil {
		r.Get("/api/stream", broadcaster.ServeHTTP)
	}

	return withRequestID(logger, r)
}
