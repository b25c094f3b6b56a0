package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

const requestTimeout = 30 * time.Second

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(loggingMiddleware)
	r.Use(recoveryMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Use(timeoutMiddleware(requestTimeout))

		r.Get("/words", s.handleBrowseWords)
		r.Post("/words/reset", s.handleResetAllWords)
		r.Get("/words/{id}", s.handleGetWord)
		r.Get("/words/{id}/history", s.handleWordHistory)
		r.Post("/words/{id}/view", s.handleViewWord)
		r.Post("/words/{id}/review", s.handleReviewWord)
		r.Post("/words/{id}/reset", s.handleResetWord)

		r.Get("/study/{mode}", s.handleStudy)

		r.Get("/stats", s.handleStats)
		r.Get("/stats/history", s.handleStatsHistory)
		r.Post("/stats/snapshot", s.handleTakeSnapshot)
		r.Get("/events/learned", s.handleLearnedEvents)

		r.Post("/import", s.handleImport)
		r.Get("/import/{id}", s.handleImportStatus)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handleError(w, r, errNotFoundRoute(r))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		handleError(w, r, errMethodNotAllowed(r))
	})
	return r
}
