package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/wordflash/internal/api"
	"github.com/vytor/wordflash/internal/jobs"
	"github.com/vytor/wordflash/internal/models"
	"github.com/vytor/wordflash/internal/repository/sqlite"
	"github.com/vytor/wordflash/internal/services"
	"github.com/vytor/wordflash/internal/testutil"
	"github.com/vytor/wordflash/internal/worker"
)

type testEnv struct {
	handler http.Handler
	clock   *testutil.Clock
	ids     map[string]int64
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	conn := testutil.NewTestDB(t)
	t.Cleanup(func() { testutil.MustClose(t, conn) })

	clock := &testutil.Clock{Now: time.Date(2024, 6, 12, 15, 0, 0, 0, time.UTC)}
	wordRepo := sqlite.NewWordRepository(conn)
	reviewRepo := sqlite.NewReviewRepository(conn)
	learnedRepo := sqlite.NewLearnedEventRepository(conn)
	snapshotRepo := sqlite.NewSnapshotRepository(conn)

	wordSvc := services.NewWordService(wordRepo, reviewRepo, learnedRepo, services.WordServiceConfig{
		Debounce: time.Second,
		Clock:    clock.Time,
	})
	statsSvc := services.NewStatsService(wordRepo, reviewRepo, learnedRepo, snapshotRepo, time.UTC, clock.Time)

	pool := worker.NewPool(1, 4)
	pool.Start(context.Background())
	t.Cleanup(pool.Stop)
	queue := jobs.NewWorkerQueue(pool, wordSvc, jobs.NewTracker(clock.Time))

	srv := &api.Server{
		WordService:   wordSvc,
		StatsService:  statsSvc,
		ImportService: services.NewImportService(queue),
		DB:            conn,
	}

	env := &testEnv{handler: srv.Routes(), clock: clock, ids: map[string]int64{}}
	for _, text := range []string{"lucid", "ephemeral", "terse"} {
		id, err := wordRepo.Insert(context.Background(), testutil.Word(text))
		require.NoError(t, err)
		env.ids[text] = id
	}
	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		req = httptest.NewRequest(method, path, bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func path(format string, id int64) string {
	return strings.Replace(format, "{id}", strconv.FormatInt(id, 10), 1)
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec = env.do(t, http.MethodGet, "/readyz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Ready", rec.Body.String())
}

func TestRequestIDIsEchoed(t *testing.T) {
	env := newTestEnv(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}

func TestGetWord(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, path("/api/words/{id}", env.ids["lucid"]), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	w := decode[models.Word](t, rec)
	assert.Equal(t, "lucid", w.Word)
	assert.Equal(t, models.StatusNew, w.Status)

	rec = env.do(t, http.MethodGet, "/api/words/999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", decode[errorBody](t, rec).Error.Code)

	rec = env.do(t, http.MethodGet, "/api/words/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "BAD_REQUEST", decode[errorBody](t, rec).Error.Code)
}

func TestBrowseWords(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/words?sort=alpha", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	words := decode[[]models.Word](t, rec)
	require.Len(t, words, 3)
	assert.Equal(t, "ephemeral", words[0].Word)
	assert.Equal(t, "lucid", words[1].Word)

	rec = env.do(t, http.MethodGet, "/api/words?q=TERS", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	words = decode[[]models.Word](t, rec)
	require.Len(t, words, 1)
	assert.Equal(t, "terse", words[0].Word)

	rec = env.do(t, http.MethodGet, "/api/words?limit=-4", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", decode[errorBody](t, rec).Error.Code)
}

func TestReviewFlow(t *testing.T) {
	env := newTestEnv(t)
	id := env.ids["lucid"]

	rec := env.do(t, http.MethodPost, path("/api/words/{id}/view", id), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.StatusLearning, decode[models.Word](t, rec).Status)

	rec = env.do(t, http.MethodPost, path("/api/words/{id}/review", id), map[string]any{"quality": "good", "time_seconds": 2.5})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	out := decode[services.ReviewOutcome](t, rec)
	assert.True(t, out.Learned)
	assert.Equal(t, models.StatusLearned, out.Word.Status)
	assert.Equal(t, 1, out.Word.TotalReviews)

	// Second rating inside the debounce window.
	rec = env.do(t, http.MethodPost, path("/api/words/{id}/review", id), map[string]any{"quality": 2})
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "RATE_LIMITED", decode[errorBody](t, rec).Error.Code)

	env.clock.Advance(2 * time.Second)
	rec = env.do(t, http.MethodPost, path("/api/words/{id}/review", id), map[string]any{"quality": 0})
	require.Equal(t, http.StatusOK, rec.Code)
	out = decode[services.ReviewOutcome](t, rec)
	assert.False(t, out.Learned)
	assert.Equal(t, models.StatusReview, out.Word.Status)
	assert.Equal(t, 1, out.Word.MistakeCount)

	rec = env.do(t, http.MethodGet, path("/api/words/{id}/history", id), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.ReviewHistory](t, rec), 2)

	rec = env.do(t, http.MethodGet, "/api/events/learned", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	events := decode[[]models.LearnedEvent](t, rec)
	require.Len(t, events, 1)
	assert.Equal(t, "lucid", events[0].Word)
}

func TestReviewRejectsBadQuality(t *testing.T) {
	env := newTestEnv(t)
	id := env.ids["terse"]

	rec := env.do(t, http.MethodPost, path("/api/words/{id}/review", id), map[string]any{"quality": 9})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_QUALITY", decode[errorBody](t, rec).Error.Code)

	rec = env.do(t, http.MethodPost, path("/api/words/{id}/review", id), map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", decode[errorBody](t, rec).Error.Code)

	// Nothing was stored.
	rec = env.do(t, http.MethodGet, path("/api/words/{id}", id), nil)
	assert.Equal(t, 0, decode[models.Word](t, rec).TotalReviews)
}

func TestReviewAcceptsFormValues(t *testing.T) {
	env := newTestEnv(t)
	req := httptest.NewRequest(http.MethodPost, path("/api/words/{id}/review", env.ids["terse"]),
		strings.NewReader("quality=hard&time_seconds=1.5"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	out := decode[services.ReviewOutcome](t, rec)
	assert.Equal(t, 1, out.Word.MistakeCount)
}

func TestResetEndpoints(t *testing.T) {
	env := newTestEnv(t)
	id := env.ids["ephemeral"]

	rec := env.do(t, http.MethodPost, path("/api/words/{id}/review", id), map[string]any{"quality": "easy"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodPost, path("/api/words/{id}/reset", id), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	w := decode[models.Word](t, rec)
	assert.Equal(t, models.StatusNew, w.Status)
	assert.Zero(t, w.TotalReviews)
	assert.Nil(t, w.NextReview)

	rec = env.do(t, http.MethodPost, "/api/words/reset", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(3), decode[map[string]any](t, rec)["reset"])
}

func TestStudyModes(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/study/new?limit=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[struct {
		Mode  string        `json:"mode"`
		Count int           `json:"count"`
		Words []models.Word `json:"words"`
	}](t, rec)
	assert.Equal(t, "new", body.Mode)
	assert.Equal(t, 2, body.Count)
	assert.Len(t, body.Words, 2)

	rec = env.do(t, http.MethodGet, "/api/study/learned", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"words":[]`)

	rec = env.do(t, http.MethodGet, "/api/study/Random", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/study/cram", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStatsEndpoints(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decode[models.WordStats](t, rec)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 3, stats.New)

	rec = env.do(t, http.MethodPost, "/api/stats/snapshot", nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/stats/history?days=7", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	history := decode[[]models.StatsSnapshot](t, rec)
	require.Len(t, history, 1)
	assert.Equal(t, "2024-06-12", history[0].Day)
	assert.Equal(t, 3, history[0].Total)
}

func TestImportUpload(t *testing.T) {
	env := newTestEnv(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "more.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte("word,meaning\nlucid,dup\nzealous,eager\nwary,cautious\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Code, rec.Body.String())
	job := decode[models.ImportJob](t, rec)
	assert.Equal(t, 3, job.Total)
	assert.Equal(t, "/api/import/"+job.ID, rec.Header().Get("Location"))

	require.Eventually(t, func() bool {
		rec := env.do(t, http.MethodGet, "/api/import/"+job.ID, nil)
		return rec.Code == http.StatusOK && decode[models.ImportJob](t, rec).State == models.ImportDone
	}, 2*time.Second, 10*time.Millisecond)

	rec = env.do(t, http.MethodGet, "/api/import/"+job.ID, nil)
	done := decode[models.ImportJob](t, rec)
	assert.Equal(t, 2, done.Inserted)
	assert.Equal(t, 1, done.Skipped)

	rec = env.do(t, http.MethodGet, "/api/words", nil)
	assert.Len(t, decode[[]models.Word](t, rec), 5)
}

func TestImportRejectsMissingFile(t *testing.T) {
	env := newTestEnv(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("note", "no file"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/import", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/import/unknown", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUnknownRoute(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/nothing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", decode[errorBody](t, rec).Error.Code)

	rec = env.do(t, http.MethodDelete, "/api/stats", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
