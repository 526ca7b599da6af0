// Package runner drives a user through the assessment question sequence:
// one question at a time, backward navigation, alternate phrasings, and a
// final contact step before the answers are submitted in one request.
package runner

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/patternwork/patternwork-backend/internal/model"
	"github.com/rs/zerolog"
)

// State enumerates the runner's lifecycle states.
type State string

const (
	// StateQuestioning means a question is on screen.
	StateQuestioning State = "QUESTIONING"
	// StateFinalizing means all questions were visited and the contact
	// step is on screen.
	StateFinalizing State = "FINALIZING"
	// StateDone is terminal: the submission was accepted by the server.
	StateDone State = "DONE"
)

var (
	// ErrWrongState is returned when an operation is invoked outside the
	// state it is valid in.
	ErrWrongState = errors.New("operation not valid in current state")
	// ErrInvalidChoice is returned when a choice value does not belong to
	// the current question.
	ErrInvalidChoice = errors.New("choice value not among question choices")
	// ErrEmailRequired is the field-level error for an empty contact email.
	ErrEmailRequired = errors.New("email is required")
	// ErrEmailInvalid is the field-level error for a malformed contact email.
	ErrEmailInvalid = errors.New("email does not look valid")
	// ErrSubmitInFlight is returned when Submit is called while a previous
	// submission request has not finished.
	ErrSubmitInFlight = errors.New("a submission is already in flight")
	// ErrNoQuestions is returned by New when the question list is empty.
	ErrNoQuestions = errors.New("question list is empty")
)

// Submitter sends one accumulated answer set to the server.
type Submitter interface {
	SubmitAssessment(ctx context.Context, req model.SubmissionRequest) (*model.SubmissionResult, error)
}

// Runner is the questionnaire state machine. It is built for the
// single-threaded, event-driven use of a UI loop: operations must not be
// called concurrently, and each runs to completion before the next.
type Runner struct {
	questions []model.Question
	submitter Submitter
	log       zerolog.Logger

	state   State
	index   int
	answers model.AnswerSet
	busy    bool
	result  *model.SubmissionResult
}

// New creates a Runner positioned on the first question with an empty
// answer set.
func New(questions []model.Question, submitter Submitter, log zerolog.Logger) (*Runner, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	return &Runner{
		questions: questions,
		submitter: submitter,
		log:       log.With().Str("component", "runner").Logger(),
		state:     StateQuestioning,
		answers:   make(model.AnswerSet, len(questions)),
	}, nil
}

// State returns the current lifecycle state.
func (r *Runner) State() State { return r.state }

// Index returns the current question index.
func (r *Runner) Index() int { return r.index }

// Total returns the number of questions in the run.
func (r *Runner) Total() int { return len(r.questions) }

// Busy reports whether a submission request is in flight.
func (r *Runner) Busy() bool { return r.busy }

// Result returns the server's response after a successful submission,
// nil before.
func (r *Runner) Result() *model.SubmissionResult { return r.result }

// Current returns the question the runner is positioned on.
func (r *Runner) Current() *model.Question {
	return &r.questions[r.index]
}

// CurrentText returns the phrasing variant of the current question that
// should be on screen.
func (r *Runner) CurrentText() string {
	q := r.Current()
	return q.Text(r.answers[q.ID].AltIndex)
}

// Answer returns the answer record for a question ID. The zero record is
// returned for questions that were never touched.
func (r *Runner) Answer(questionID string) model.Answer {
	return r.answers[questionID]
}

// SelectChoice records the selected choice for the current question.
func (r *Runner) SelectChoice(value string) error {
	if r.state != StateQuestioning {
		return ErrWrongState
	}
	q := r.Current()
	if !q.HasChoice(value) {
		return fmt.Errorf("%w: %q", ErrInvalidChoice, value)
	}
	a := r.answers[q.ID]
	a.Choice = value
	r.answers[q.ID] = a
	return nil
}

// SetFreeText records the free-form text for the current question.
func (r *Runner) SetFreeText(text string) error {
	if r.state != StateQuestioning {
		return ErrWrongState
	}
	q := r.Current()
	a := r.answers[q.ID]
	a.Text = text
	r.answers[q.ID] = a
	return nil
}

// CyclePhrasing advances the current question to its next phrasing
// variant, wrapping back to the primary one. Questions without alternates
// are left untouched.
func (r *Runner) CyclePhrasing() error {
	if r.state != StateQuestioning {
		return ErrWrongState
	}
	q := r.Current()
	if len(q.Alts) == 0 {
		return nil
	}
	a := r.answers[q.ID]
	a.AltIndex = (a.AltIndex + 1) % q.Variants()
	r.answers[q.ID] = a
	return nil
}

// GoBack moves to the previous question. At the first question it is a
// no-op; the state is left unchanged.
func (r *Runner) GoBack() error {
	if r.state != StateQuestioning {
		return ErrWrongState
	}
	if r.index > 0 {
		r.index--
	}
	return nil
}

// Advance moves to the next question, or to the contact step when the
// last question is on screen.
func (r *Runner) Advance() error {
	if r.state != StateQuestioning {
		return ErrWrongState
	}
	if r.index < len(r.questions)-1 {
		r.index++
		return nil
	}
	r.state = StateFinalizing
	return nil
}

// BackToQuestions returns from the contact step to the last question.
func (r *Runner) BackToQuestions() error {
	if r.state != StateFinalizing {
		return ErrWrongState
	}
	r.state = StateQuestioning
	r.index = len(r.questions) - 1
	return nil
}

// Submit validates the contact email and sends the accumulated answers in
// one request. On transport or server failure the runner stays in the
// contact step with the answer set intact, so the user can retry without
// re-entering anything.
func (r *Runner) Submit(ctx context.Context, contactEmail string) (*model.SubmissionResult, error) {
	if r.state != StateFinalizing {
		return nil, ErrWrongState
	}
	if r.busy {
		return nil, ErrSubmitInFlight
	}

	email := strings.TrimSpace(contactEmail)
	if email == "" {
		return nil, ErrEmailRequired
	}
	if !model.LooksLikeEmail(email) {
		return nil, ErrEmailInvalid
	}

	r.busy = true
	defer func() { r.busy = false }()

	res, err := r.submitter.SubmitAssessment(ctx, model.SubmissionRequest{
		Answers:   r.answers,
		UserEmail: email,
	})
	if err != nil {
		r.log.Warn().Err(err).Msg("submission failed, keeping answers for retry")
		return nil, fmt.Errorf("submit assessment: %w", err)
	}

	r.state = StateDone
	r.result = res
	r.log.Info().Str("assessment_id", res.AssessmentID.String()).Msg("assessment submitted")
	return res, nil
}
