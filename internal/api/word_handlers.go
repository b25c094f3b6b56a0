package api

import (
	"encoding/json"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/vytor/wordflash/internal/errors"
	"github.com/vytor/wordflash/internal/flashcard"
	"github.com/vytor/wordflash/internal/logger"
	"github.com/vytor/wordflash/internal/study"
)

func (s *Server) handleBrowseWords(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		handleError(w, r, err)
		return
	}
	q := r.URL.Query()

	words, err := s.WordService.Browse(r.Context(), q.Get("q"), study.ParseBrowseSort(q.Get("sort")), limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, words)
}

func (s *Server) handleGetWord(w http.ResponseWriter, r *http.Request) {
	id, err := wordIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	word, err := s.WordService.Get(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, word)
}

func (s *Server) handleWordHistory(w http.ResponseWriter, r *http.Request) {
	id, err := wordIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	limit, err := queryInt(r, "limit", 50)
	if err != nil {
		handleError(w, r, err)
		return
	}

	history, err := s.WordService.History(r.Context(), id, limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, history)
}

func (s *Server) handleViewWord(w http.ResponseWriter, r *http.Request) {
	id, err := wordIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	word, err := s.WordService.View(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, word)
}

type reviewRequest struct {
	Quality     json.RawMessage `json:"quality"`
	TimeSeconds float64         `json:"time_seconds"`
}

// parseReview accepts a JSON body or form values. Quality may be a number
// (0-3) or a name (again, hard, good, easy).
func parseReview(r *http.Request) (flashcard.Quality, float64, error) {
	var rawQuality string
	var timeSeconds float64

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		var req reviewRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return 0, 0, errors.NewBadRequestError("invalid JSON body")
		}
		rawQuality = strings.Trim(string(req.Quality), `"`)
		timeSeconds = req.TimeSeconds
	} else {
		rawQuality = r.FormValue("quality")
		if ts := r.FormValue("time_seconds"); ts != "" {
			v, err := strconv.ParseFloat(ts, 64)
			if err != nil {
				return 0, 0, errors.NewValidationError("time_seconds", "must be a number")
			}
			timeSeconds = v
		}
	}

	if rawQuality == "" {
		return 0, 0, errors.NewValidationError("quality", "is required")
	}
	q, err := flashcard.ParseQuality(rawQuality)
	if err != nil {
		return 0, 0, errors.NewInvalidQualityError(err)
	}
	return q, timeSeconds, nil
}

func (s *Server) handleReviewWord(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	id, err := wordIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	quality, timeSeconds, err := parseReview(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	log = log.WithFields(map[string]any{
		"word_id":      id,
		"quality":      quality.String(),
		"time_seconds": timeSeconds,
	})
	ctx := logger.NewContext(r.Context(), log)
	log.Debug("reviewing word")

	out, err := s.WordService.Review(ctx, id, quality, timeSeconds)
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Info("word reviewed successfully")
	writeJSON(w, r, http.StatusOK, out)
}

func (s *Server) handleResetWord(w http.ResponseWriter, r *http.Request) {
	id, err := wordIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	word, err := s.WordService.Reset(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, word)
}

func (s *Server) handleResetAllWords(w http.ResponseWriter, r *http.Request) {
	n, err := s.WordService.ResetAll(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"reset": n})
}
