package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/patternwork/patternwork-backend/internal/model"
)

const defaultRequestTimeout = 15 * time.Second

// Client talks to the assessment backend over HTTP. It implements
// Submitter and also fetches the question catalog so terminal clients
// don't ship their own copy.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a Client for the given base URL, e.g.
// "http://localhost:8080". A bounded timeout keeps a hung server from
// freezing the contact step forever.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type saveResponse struct {
	Ok           bool      `json:"ok"`
	AssessmentID string    `json:"assessmentId"`
	CreatedAt    time.Time `json:"createdAt"`
	Error        string    `json:"error"`
	Detail       string    `json:"detail"`
}

// SubmitAssessment posts one answer set to /save-assessment.
func (c *Client) SubmitAssessment(ctx context.Context, req model.SubmissionRequest) (*model.SubmissionResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode submission: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/save-assessment", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("post submission: %w", err)
	}
	defer resp.Body.Close()

	var sr saveResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode != http.StatusOK || !sr.Ok {
		if sr.Error != "" {
			return nil, fmt.Errorf("server rejected submission (status %d): %s", resp.StatusCode, sr.Error)
		}
		return nil, fmt.Errorf("server rejected submission (status %d)", resp.StatusCode)
	}

	id, err := uuid.Parse(sr.AssessmentID)
	if err != nil {
		return nil, fmt.Errorf("parse assessment id %q: %w", sr.AssessmentID, err)
	}

	return &model.SubmissionResult{AssessmentID: id, CreatedAt: sr.CreatedAt}, nil
}

// FetchQuestions retrieves the ordered question catalog from the server.
func (c *Client) FetchQuestions(ctx context.Context) ([]model.Question, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/questions", nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("get questions: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get questions: unexpected status %d", resp.StatusCode)
	}

	var payload struct {
		Questions []model.Question `json:"questions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}
	return payload.Questions, nil
}
