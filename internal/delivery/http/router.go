package http //nolint:revive // directory-based package name, imported with alias

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const requestTimeout = 30 * time.Second

func NewRouter(h *Handler, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(middleware.Logger)
	r.Use(Recoverer(logger))
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/", h.HandleIndex)
	r.Get("/healthz", h.HandleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/generate-qr", h.HandleGenerate)
		r.Get("/qr", h.HandleQR)
	})

	return r
}
