package model

import (
	"time"

	"github.com/google/uuid"
)

// Answer is one answer record, keyed by question ID in an AnswerSet.
// Choice and Text are both optional; AltIndex records which phrasing
// variant of the question was on screen when the user answered.
type Answer struct {
	Choice   string `json:"choice,omitempty"`
	Text     string `json:"text,omitempty"`
	AltIndex int    `json:"altIndex"`
}

// AnswerSet maps question IDs to answer records. Iteration order is
// unspecified; code that needs question order walks the catalog instead.
type AnswerSet map[string]Answer

// SubmissionRequest is the wire payload of POST /save-assessment.
// Answers stays untagged for binding: an absent or null mapping must
// reach the service as nil (rejected there), while an empty mapping is
// accepted, matching how the endpoint always behaved.
type SubmissionRequest struct {
	Answers   AnswerSet `json:"answers"`
	UserEmail string    `json:"userEmail,omitempty"`
}

// Assessment is one persisted submission row.
type Assessment struct {
	ID        uuid.UUID `json:"id"`
	Answers   AnswerSet `json:"answers"`
	UserEmail *string   `json:"user_email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// SubmissionResult is what a successful submission returns to the caller.
type SubmissionResult struct {
	AssessmentID uuid.UUID `json:"assessmentId"`
	CreatedAt    time.Time `json:"createdAt"`
}
