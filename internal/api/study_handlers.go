package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/wordflash/internal/errors"
	"github.com/vytor/wordflash/internal/study"
)

func (s *Server) handleStudy(w http.ResponseWriter, r *http.Request) {
	mode, err := study.ParseMode(chi.URLParam(r, "mode"))
	if err != nil {
		handleError(w, r, errors.NewValidationError("mode", "must be one of new, learning, review, learned, random, browse"))
		return
	}
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		handleError(w, r, err)
		return
	}

	words, err := s.WordService.WorkingSet(r.Context(), mode, limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{
		"mode":  mode,
		"count": len(words),
		"words": words,
	})
}
