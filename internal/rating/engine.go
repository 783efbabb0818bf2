// Package rating implements the rollup engine that propagates a labourer's
// per-assignment grade into the job-level and company-level averages.
package rating

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/shiftcrew/shiftcrew/internal/domain"
	"github.com/shiftcrew/shiftcrew/internal/repository"
)

// maxAttempts bounds transaction retries on serialization conflicts before
// the operation surfaces domain.ErrConflict.
const maxAttempts = 3

// Engine recomputes job and company rating aggregates whenever an
// assignment is graded. Aggregates are derived transactionally from the
// assignment log, never incremented in place, so they can always be
// reconstructed by recomputation.
type Engine struct {
	pool   *pgxpool.Pool
	repo   *repository.AssignmentsRepository
	logger *zap.Logger
}

// New constructs the rollup engine.
func New(pool *pgxpool.Pool, repo *repository.AssignmentsRepository, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{pool: pool, repo: repo, logger: logger}
}

// GradeAssignment records the labourer's rating for an assignment and
// synchronously recomputes the parent job's and company's averages as one
// atomic unit.
//
// Failure modes: domain.ErrNotFound when the assignment is absent or owned
// by a different labourer, domain.ErrAlreadyGraded when the assignment was
// rated before (the transition commits at most once, concurrent callers
// lose with this error), domain.ErrValidation for a rating outside
// [1, 5], and domain.ErrConflict when transaction retries are exhausted.
func (e *Engine) GradeAssignment(ctx context.Context, assignmentID string, rating int16, labourerID string) error {
	if !domain.ValidRating(rating) {
		return fmt.Errorf("%w: rating must be between %d and %d", domain.ErrValidation, domain.RatingMin, domain.RatingMax)
	}
	if assignmentID == "" || labourerID == "" {
		return fmt.Errorf("%w: assignment and labourer ids are required", domain.ErrValidation)
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := e.gradeOnce(ctx, assignmentID, rating, labourerID)
		if err == nil {
			e.logger.Info("assignment graded",
				zap.String("assignment_id", assignmentID),
				zap.Int16("rating", rating))
			return nil
		}
		if !repository.IsRetryableTxErr(err) {
			return err
		}
		lastErr = err
		e.logger.Warn("grading transaction conflict, retrying",
			zap.String("assignment_id", assignmentID),
			zap.Int("attempt", attempt),
			zap.Error(err))
	}
	return fmt.Errorf("%w: %v", domain.ErrConflict, lastErr)
}

func (e *Engine) gradeOnce(ctx context.Context, assignmentID string, rating int16, labourerID string) error {
	tx, err := e.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin grading: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := e.repo.GradeInTx(ctx, tx, assignmentID, rating, labourerID); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit grading: %w", err)
	}
	return nil
}
