package runner

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patternwork/patternwork-backend/internal/model"
)

func TestClientSubmitAssessment(t *testing.T) {
	wantID := uuid.New()
	var got model.SubmissionRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/save-assessment", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"ok":           true,
			"assessmentId": wantID.String(),
			"createdAt":    time.Now().UTC().Format(time.RFC3339Nano),
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	res, err := c.SubmitAssessment(context.Background(), model.SubmissionRequest{
		Answers:   model.AnswerSet{"conflict-1": {Choice: "wave", AltIndex: 1}},
		UserEmail: "user@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, wantID, res.AssessmentID)
	assert.Equal(t, "user@example.com", got.UserEmail)
	assert.Equal(t, "wave", got.Answers["conflict-1"].Choice)
	assert.Equal(t, 1, got.Answers["conflict-1"].AltIndex)
}

func TestClientSubmitAssessmentServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "Missing or invalid 'answers' payload."})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	_, err := c.SubmitAssessment(context.Background(), model.SubmissionRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Missing or invalid 'answers' payload.")
}

func TestClientFetchQuestions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/questions", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"questions": []model.Question{
				{ID: "q1", Label: "First?", Choices: []model.Choice{{Value: "a", Label: "A"}}},
			},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	qs, err := c.FetchQuestions(context.Background())
	require.NoError(t, err)
	require.Len(t, qs, 1)
	assert.Equal(t, "q1", qs[0].ID)
}
