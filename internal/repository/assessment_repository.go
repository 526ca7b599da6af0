package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/patternwork/patternwork-backend/internal/model"
)

// AssessmentRepository persists submitted assessments.
type AssessmentRepository struct {
	pool *pgxpool.Pool
}

// NewAssessmentRepository creates a new AssessmentRepository.
func NewAssessmentRepository(pool *pgxpool.Pool) *AssessmentRepository {
	return &AssessmentRepository{pool: pool}
}

// Create inserts one assessment row. The answers payload is stored as
// JSONB verbatim; the insert is a single statement, so a failure leaves
// no partial row behind. The database clock fills CreatedAt.
func (r *AssessmentRepository) Create(ctx context.Context, a *model.Assessment) error {
	payload, err := json.Marshal(a.Answers)
	if err != nil {
		return fmt.Errorf("encode answers: %w", err)
	}

	return r.pool.QueryRow(ctx,
		`INSERT INTO assessments (id, answers, user_email)
		 VALUES ($1, $2, $3)
		 RETURNING created_at`,
		a.ID, payload, a.UserEmail,
	).Scan(&a.CreatedAt)
}
