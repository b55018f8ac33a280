package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// local monitor API, no authorization
	router.Group(func(r chi.Router) {
		r.Get("/api/sync/status", h.status)
		r.Get("/api/sync/queue", h.listQueue)
		r.Get("/api/sync/conflicts", h.listConflicts)
		r.Post("/api/sync/conflicts/{itemID}/resolve", h.resolveConflict)
		r.Post("/api/sync/run", h.runCycle)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
