package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patternwork/patternwork-backend/internal/config"
	"github.com/patternwork/patternwork-backend/internal/handler"
	"github.com/patternwork/patternwork-backend/internal/model"
	"github.com/patternwork/patternwork-backend/internal/router"
	"github.com/patternwork/patternwork-backend/internal/service"
	"github.com/patternwork/patternwork-backend/internal/validator"
)

type memStore struct {
	mu     sync.Mutex
	writes int
	err    error
}

func (m *memStore) Create(_ context.Context, a *model.Assessment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.writes++
	a.CreatedAt = time.Now()
	return nil
}

func (m *memStore) writeCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

func newTestEngine(store service.AssessmentStore, requireEmail bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	validator.Setup()

	svc := service.NewAssessmentService(store, nil, nil, requireEmail, time.Second, zerolog.Nop())
	handlers := &router.Handlers{
		Assessment: handler.NewAssessmentHandler(svc),
		Question:   handler.NewQuestionHandler(),
	}
	return router.SetupRouter(handlers, &config.Config{GinMode: gin.TestMode})
}

func doJSON(engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestSaveHappyPath(t *testing.T) {
	store := &memStore{}
	engine := newTestEngine(store, false)

	w := doJSON(engine, http.MethodPost, "/save-assessment",
		`{"answers": {"q1": {"choice": "a", "altIndex": 0}}, "userEmail": "user@example.com"}`)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Ok           bool   `json:"ok"`
		AssessmentID string `json:"assessmentId"`
		CreatedAt    string `json:"createdAt"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Ok)
	assert.NotEmpty(t, body.AssessmentID)

	created, err := time.Parse(time.RFC3339Nano, body.CreatedAt)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), created, time.Minute)
	assert.Equal(t, 1, store.writeCount())
}

func TestSaveAnswersNotAnObject(t *testing.T) {
	store := &memStore{}
	engine := newTestEngine(store, false)

	w := doJSON(engine, http.MethodPost, "/save-assessment", `{"answers": "not-an-object"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assertErrorBody(t, w)
	assert.Equal(t, 0, store.writeCount())
}

func TestSaveAnswersMissingOrNull(t *testing.T) {
	store := &memStore{}
	engine := newTestEngine(store, false)

	for _, body := range []string{`{}`, `{"answers": null}`, `{"userEmail": "user@example.com"}`} {
		w := doJSON(engine, http.MethodPost, "/save-assessment", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body %s", body)
		assertErrorBody(t, w)
	}
	assert.Equal(t, 0, store.writeCount())
}

func TestSaveMalformedJSON(t *testing.T) {
	engine := newTestEngine(&memStore{}, false)

	w := doJSON(engine, http.MethodPost, "/save-assessment", `{"answers": `)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assertErrorBody(t, w)
}

func TestSaveEmailRequiredByPolicy(t *testing.T) {
	store := &memStore{}
	engine := newTestEngine(store, true)

	w := doJSON(engine, http.MethodPost, "/save-assessment",
		`{"answers": {"q1": {"choice": "a", "altIndex": 0}}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assertErrorBody(t, w)
	assert.Equal(t, 0, store.writeCount())

	w = doJSON(engine, http.MethodPost, "/save-assessment",
		`{"answers": {"q1": {"choice": "a", "altIndex": 0}}, "userEmail": "user@example.com"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, store.writeCount())
}

func TestSaveStorageUnavailable(t *testing.T) {
	engine := newTestEngine(nil, false)

	w := doJSON(engine, http.MethodPost, "/save-assessment",
		`{"answers": {"q1": {"choice": "a", "altIndex": 0}}}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "not configured")
}

func TestSaveStorageFailureIncludesDetail(t *testing.T) {
	engine := newTestEngine(&memStore{err: errors.New("constraint violation")}, false)

	w := doJSON(engine, http.MethodPost, "/save-assessment",
		`{"answers": {"q1": {"choice": "a", "altIndex": 0}}}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotEmpty(t, body["error"])
	assert.Contains(t, body["detail"], "constraint violation")
}

func TestSaveProbe(t *testing.T) {
	engine := newTestEngine(&memStore{}, false)

	w := doJSON(engine, http.MethodGet, "/save-assessment", "")

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "save-assessment", body["route"])
}

func TestListQuestions(t *testing.T) {
	engine := newTestEngine(&memStore{}, false)

	w := doJSON(engine, http.MethodGet, "/api/v1/questions", "")

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Questions []model.Question `json:"questions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body.Questions)
	assert.Equal(t, "conflict-1", body.Questions[0].ID)
	assert.NotEmpty(t, body.Questions[0].Choices)
	assert.Contains(t, w.Header().Get("Cache-Control"), "max-age")
}

func TestHealth(t *testing.T) {
	engine := newTestEngine(&memStore{}, false)

	w := doJSON(engine, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func assertErrorBody(t *testing.T, w *httptest.ResponseRecorder) {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	msg, ok := body["error"].(string)
	require.True(t, ok, "error field must be a string, body: %s", w.Body.String())
	assert.NotEmpty(t, msg)
}
