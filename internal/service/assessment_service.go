package service

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/patternwork/patternwork-backend/internal/catalog"
	"github.com/patternwork/patternwork-backend/internal/metrics"
	"github.com/patternwork/patternwork-backend/internal/model"
	"github.com/patternwork/patternwork-backend/internal/notify"
)

const notifyTimeout = 30 * time.Second

// AssessmentStore is the persistence boundary of the submission pipeline.
type AssessmentStore interface {
	Create(ctx context.Context, a *model.Assessment) error
}

// AssessmentService validates submissions, persists them, and dispatches
// the notification mail. One call handles exactly one submission; the
// service keeps no per-submission state between calls, so concurrent
// requests only share the store underneath.
type AssessmentService struct {
	store               AssessmentStore
	sender              notify.Sender
	sink                metrics.Sink
	requireContactEmail bool
	storageTimeout      time.Duration
	log                 zerolog.Logger
}

// NewAssessmentService creates an AssessmentService. A nil store means the
// datastore was never configured: submissions then fail with
// ErrStorageUnavailable without touching anything. A nil sender disables
// notification silently.
func NewAssessmentService(
	store AssessmentStore,
	sender notify.Sender,
	sink metrics.Sink,
	requireContactEmail bool,
	storageTimeout time.Duration,
	log zerolog.Logger,
) *AssessmentService {
	if sink == nil {
		sink = metrics.NopSink{}
	}
	if storageTimeout <= 0 {
		storageTimeout = 10 * time.Second
	}
	return &AssessmentService{
		store:               store,
		sender:              sender,
		sink:                sink,
		requireContactEmail: requireContactEmail,
		storageTimeout:      storageTimeout,
		log:                 log.With().Str("component", "assessment_service").Logger(),
	}
}

// Submit runs the whole pipeline for one submission: validate, insert one
// row, fire the notification. Validation happens before any resource is
// touched. The notification is spawned after the result is final and can
// never turn a success into a failure.
func (s *AssessmentService) Submit(ctx context.Context, req model.SubmissionRequest) (*model.SubmissionResult, error) {
	if req.Answers == nil {
		return nil, invalidPayload("Missing or invalid 'answers' payload.")
	}

	email := strings.TrimSpace(req.UserEmail)
	if s.requireContactEmail && !model.LooksLikeEmail(email) {
		return nil, invalidPayload("A valid email address is required.")
	}

	if s.store == nil {
		return nil, storageUnavailable("Datastore is not configured.")
	}

	a := &model.Assessment{
		ID:      uuid.New(),
		Answers: req.Answers,
	}
	if email != "" {
		a.UserEmail = &email
	}

	storeCtx, cancel := context.WithTimeout(ctx, s.storageTimeout)
	defer cancel()

	if err := s.store.Create(storeCtx, a); err != nil {
		s.log.Error().Err(err).Msg("assessment insert failed")
		return nil, storageError("Failed to save assessment.", err)
	}

	s.sink.Incr(ctx, metrics.CounterSubmissionSaved)
	s.log.Info().
		Str("assessment_id", a.ID.String()).
		Int("answers", len(a.Answers)).
		Bool("has_email", a.UserEmail != nil).
		Msg("assessment saved")

	if s.sender != nil && a.UserEmail != nil {
		// Detached from the request context: the response must not wait
		// for the mail, and the request context dies when we return.
		go s.dispatchNotification(*a)
	}

	return &model.SubmissionResult{AssessmentID: a.ID, CreatedAt: a.CreatedAt}, nil
}

func (s *AssessmentService) dispatchNotification(a model.Assessment) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	subject := "Your Patternwork assessment was received"
	body := buildSummaryHTML(&a)

	if err := s.sender.Send(ctx, *a.UserEmail, subject, body); err != nil {
		s.sink.Incr(ctx, metrics.CounterNotifyFailed)
		s.log.Warn().Err(err).
			Str("assessment_id", a.ID.String()).
			Msg("notification mail failed")
		return
	}

	s.sink.Incr(ctx, metrics.CounterNotifySent)
	s.log.Info().
		Str("assessment_id", a.ID.String()).
		Msg("notification mail sent")
}

// buildSummaryHTML renders the answers in catalog order, using the
// phrasing variant each answer was given under.
func buildSummaryHTML(a *model.Assessment) string {
	var b strings.Builder
	b.WriteString("<h2>Patternwork Assessment</h2>")
	fmt.Fprintf(&b, "<p>Reference: %s</p>", a.ID)

	for _, q := range catalog.Questions() {
		ans, ok := a.Answers[q.ID]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "<h3>%s</h3>", html.EscapeString(q.Text(ans.AltIndex)))
		if ans.Choice != "" {
			fmt.Fprintf(&b, "<p>%s</p>", html.EscapeString(q.ChoiceLabel(ans.Choice)))
		}
		if ans.Text != "" {
			fmt.Fprintf(&b, "<p><em>%s</em></p>", html.EscapeString(ans.Text))
		}
	}

	b.WriteString("<p>This is a reflective mapping, not a diagnosis.</p>")
	return b.String()
}
