package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/sevigo/pr-gatekeeper/internal/server/handler"
)

// Routes served by the gatekeeper.
const (
	HealthPath  = "/health"
	WebhookPath = "/webhook"
)

// GitHub caps webhook payloads at 25 MB.
const maxPayloadBytes = 25 << 20

// Comment commands may call every CI backend inline.
const requestTimeout = 60 * time.Second

// NewRouter routes GitHub deliveries to the webhook handler. Panics are
// recovered per request, so a bad delivery cannot take the process down.
func NewRouter(webhookHandler *handler.WebhookHandler, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat(HealthPath))

	r.With(
		middleware.RequestSize(maxPayloadBytes),
		middleware.Timeout(requestTimeout),
	).Post(WebhookPath, webhookHandler.Handle)

	return r
}

// requestLogger logs one line per request with the GitHub delivery id, so a
// request can be matched to the delivery in the repository's webhook settings.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)

			if r.URL.Path == HealthPath {
				return
			}
			logger.Info("request served",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
				"delivery_id", r.Header.Get("X-GitHub-Delivery"),
				"event", r.Header.Get("X-GitHub-Event"))
		})
	}
}
