package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shiftcrew/shiftcrew/internal/domain"
)

// AssignmentsRepository is the durable record of labourer-to-job assignments.
type AssignmentsRepository struct {
	pool *pgxpool.Pool
}

const assignmentColumns = `
    id,
    job_id,
    labourer_id,
    skill_id,
    date,
    wage_amount,
    charge_amount,
    quality_rating,
    safety_rating,
    job_rating,
    created_at,
    updated_at
`

// AssignmentCreateParams bundles the fields required to create an assignment.
type AssignmentCreateParams struct {
	JobID        string
	LabourerID   string
	SkillID      string
	Date         time.Time
	WageAmount   int64
	ChargeAmount int64
}

func (p AssignmentCreateParams) validate() error {
	if p.WageAmount < 0 {
		return fmt.Errorf("%w: wageAmount must be non-negative", domain.ErrValidation)
	}
	if p.ChargeAmount < 0 {
		return fmt.Errorf("%w: chargeAmount must be non-negative", domain.ErrValidation)
	}
	return nil
}

// AssignmentListFilters encapsulates search and pagination options.
// CompanyID filters through the assignment's job. The date range is
// half-open: [From, To).
type AssignmentListFilters struct {
	JobID      *string
	LabourerID *string
	CompanyID  *string
	From       *time.Time
	To         *time.Time
	Page       int
	PageSize   int
}

// AssignmentListResult returns the paginated payload. TotalRows counts the
// full filtered set, not the page.
type AssignmentListResult struct {
	TotalRows int64
	Items     []domain.Assignment
}

// Create inserts a new assignment row and returns the stored entity.
// Referencing a missing job, labourer, or skill fails with
// domain.ErrValidation via the foreign-key constraints.
func (r *AssignmentsRepository) Create(ctx context.Context, params AssignmentCreateParams) (domain.Assignment, error) {
	if err := params.validate(); err != nil {
		return domain.Assignment{}, err
	}

	query := fmt.Sprintf(`
        INSERT INTO assignments (id, job_id, labourer_id, skill_id, date, wage_amount, charge_amount)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING %s
    `, assignmentColumns)

	row := r.pool.QueryRow(ctx, query,
		uuid.NewString(), params.JobID, params.LabourerID, params.SkillID,
		params.Date, params.WageAmount, params.ChargeAmount)
	assignment, err := scanAssignment(row)
	if err != nil {
		return domain.Assignment{}, mapConstraintErr(err)
	}
	return assignment, nil
}

// CreateBatch inserts several assignments atomically. Either every row is
// stored or none is.
func (r *AssignmentsRepository) CreateBatch(ctx context.Context, batch []AssignmentCreateParams) ([]domain.Assignment, error) {
	for _, params := range batch {
		if err := params.validate(); err != nil {
			return nil, err
		}
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin batch insert: %w", err)
	}
	defer tx.Rollback(ctx)

	query := fmt.Sprintf(`
        INSERT INTO assignments (id, job_id, labourer_id, skill_id, date, wage_amount, charge_amount)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING %s
    `, assignmentColumns)

	created := make([]domain.Assignment, 0, len(batch))
	for _, params := range batch {
		row := tx.QueryRow(ctx, query,
			uuid.NewString(), params.JobID, params.LabourerID, params.SkillID,
			params.Date, params.WageAmount, params.ChargeAmount)
		assignment, err := scanAssignment(row)
		if err != nil {
			return nil, mapConstraintErr(err)
		}
		created = append(created, assignment)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit batch insert: %w", err)
	}
	return created, nil
}

// GetByID fetches an assignment by its identifier.
func (r *AssignmentsRepository) GetByID(ctx context.Context, id string) (domain.Assignment, error) {
	query := fmt.Sprintf(`SELECT %s FROM assignments WHERE id = $1`, assignmentColumns)
	assignment, err := scanAssignment(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Assignment{}, domain.ErrNotFound
		}
		return domain.Assignment{}, err
	}
	return assignment, nil
}

// List returns assignments matching the provided filters, ordered by date
// descending, newest id first within a day.
func (r *AssignmentsRepository) List(ctx context.Context, filters AssignmentListFilters) (AssignmentListResult, error) {
	page, pageSize := normalizePage(filters.Page, filters.PageSize)

	where := make([]string, 0)
	args := make([]interface{}, 0)
	arg := func(value interface{}) string {
		args = append(args, value)
		return fmt.Sprintf("$%d", len(args))
	}

	if filters.JobID != nil {
		where = append(where, fmt.Sprintf("a.job_id = %s", arg(*filters.JobID)))
	}
	if filters.LabourerID != nil {
		where = append(where, fmt.Sprintf("a.labourer_id = %s", arg(*filters.LabourerID)))
	}
	if filters.CompanyID != nil {
		where = append(where, fmt.Sprintf("j.company_id = %s", arg(*filters.CompanyID)))
	}
	if filters.From != nil {
		where = append(where, fmt.Sprintf("a.date >= %s", arg(*filters.From)))
	}
	if filters.To != nil {
		where = append(where, fmt.Sprintf("a.date < %s", arg(*filters.To)))
	}

	whereClause := ""
	if len(where) > 0 {
		whereClause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int64
	countQuery := "SELECT COUNT(*) FROM assignments a JOIN jobs j ON j.id = a.job_id" + whereClause
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return AssignmentListResult{}, fmt.Errorf("count assignments: %w", err)
	}

	listQuery := fmt.Sprintf(`
        SELECT %s FROM (
            SELECT a.* FROM assignments a JOIN jobs j ON j.id = a.job_id%s
        ) a
        ORDER BY date DESC, created_at DESC
        LIMIT %d OFFSET %d
    `, assignmentColumns, whereClause, pageSize, (page-1)*pageSize)

	rows, err := r.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return AssignmentListResult{}, err
	}
	defer rows.Close()

	items := make([]domain.Assignment, 0)
	for rows.Next() {
		assignment, err := scanAssignment(rows)
		if err != nil {
			return AssignmentListResult{}, err
		}
		items = append(items, assignment)
	}
	if err := rows.Err(); err != nil {
		return AssignmentListResult{}, err
	}

	return AssignmentListResult{TotalRows: total, Items: items}, nil
}

// UpdateWorkRatings sets the company-side quality/safety grades on an
// assignment. Unlike the labourer's job rating, these may be overwritten.
func (r *AssignmentsRepository) UpdateWorkRatings(ctx context.Context, id string, quality, safety *int16) error {
	for _, v := range []*int16{quality, safety} {
		if v != nil && !domain.ValidRating(*v) {
			return fmt.Errorf("%w: rating must be between %d and %d", domain.ErrValidation, domain.RatingMin, domain.RatingMax)
		}
	}

	tag, err := r.pool.Exec(ctx, `
        UPDATE assignments
        SET quality_rating = COALESCE($2, quality_rating),
            safety_rating = COALESCE($3, safety_rating),
            updated_at = now()
        WHERE id = $1
    `, id, quality, safety)
	if err != nil {
		return mapConstraintErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GradeInTx performs the grading state transition and the two-level rating
// rollup inside the caller's transaction: lock the assignment, reject
// re-grading, lock the parent job and company, write the rating, then
// recompute both aggregates. The caller owns commit/rollback and retry.
func (r *AssignmentsRepository) GradeInTx(ctx context.Context, tx pgx.Tx, id string, rating int16, labourerID string) error {
	target, err := r.lockForGrading(ctx, tx, id, labourerID)
	if err != nil {
		return err
	}
	if target.Graded {
		return domain.ErrAlreadyGraded
	}

	// Lock order is fixed (assignment, job, company) so concurrent gradings
	// of the same job serialize instead of deadlocking.
	companyID, err := r.lockJob(ctx, tx, target.JobID)
	if err != nil {
		return err
	}
	if err := r.lockCompany(ctx, tx, companyID); err != nil {
		return err
	}

	if err := r.setJobRating(ctx, tx, id, rating); err != nil {
		return fmt.Errorf("set job rating: %w", err)
	}
	if err := r.recomputeJobRating(ctx, tx, target.JobID); err != nil {
		return err
	}
	if err := r.recomputeCompanyRating(ctx, tx, companyID); err != nil {
		return err
	}
	return nil
}

// gradeTarget is the locked state the rollup engine needs before grading.
type gradeTarget struct {
	JobID  string
	Graded bool
}

// lockForGrading locks the assignment row for the grading transaction and
// returns its current state. Ownership is part of the predicate: an
// assignment belonging to another labourer behaves as absent.
func (r *AssignmentsRepository) lockForGrading(ctx context.Context, tx pgx.Tx, id, labourerID string) (gradeTarget, error) {
	var (
		jobID     string
		jobRating *int16
	)
	err := tx.QueryRow(ctx, `
        SELECT job_id, job_rating
        FROM assignments
        WHERE id = $1 AND labourer_id = $2
        FOR UPDATE
    `, id, labourerID).Scan(&jobID, &jobRating)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return gradeTarget{}, domain.ErrNotFound
		}
		return gradeTarget{}, err
	}
	return gradeTarget{JobID: jobID, Graded: jobRating != nil}, nil
}

// lockJob takes the per-job exclusive scope for an aggregate recompute and
// returns the owning company.
func (r *AssignmentsRepository) lockJob(ctx context.Context, tx pgx.Tx, jobID string) (string, error) {
	var companyID string
	err := tx.QueryRow(ctx, `SELECT company_id FROM jobs WHERE id = $1 FOR UPDATE`, jobID).Scan(&companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		return "", err
	}
	return companyID, nil
}

func (r *AssignmentsRepository) lockCompany(ctx context.Context, tx pgx.Tx, companyID string) error {
	var id string
	err := tx.QueryRow(ctx, `SELECT id FROM companies WHERE id = $1 FOR UPDATE`, companyID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *AssignmentsRepository) setJobRating(ctx context.Context, tx pgx.Tx, id string, rating int16) error {
	_, err := tx.Exec(ctx, `
        UPDATE assignments SET job_rating = $2, updated_at = now() WHERE id = $1
    `, id, rating)
	return err
}

// recomputeJobRating rewrites the job's rating as the mean of the non-null,
// non-zero job ratings across its assignments. An empty set leaves the
// prior value unchanged: the mean of nothing is undefined, never zero.
func (r *AssignmentsRepository) recomputeJobRating(ctx context.Context, tx pgx.Tx, jobID string) error {
	var avg *float64
	err := tx.QueryRow(ctx, `
        SELECT AVG(job_rating)::float8
        FROM assignments
        WHERE job_id = $1 AND job_rating IS NOT NULL AND job_rating <> 0
    `, jobID).Scan(&avg)
	if err != nil {
		return fmt.Errorf("average job ratings: %w", err)
	}
	if avg == nil {
		return nil
	}
	_, err = tx.Exec(ctx, `UPDATE jobs SET rating = $2, updated_at = now() WHERE id = $1`, jobID, float32(*avg))
	return err
}

// recomputeCompanyRating rewrites the company's rating as the mean of the
// non-zero ratings across its jobs, with the same empty-set policy.
func (r *AssignmentsRepository) recomputeCompanyRating(ctx context.Context, tx pgx.Tx, companyID string) error {
	var avg *float64
	err := tx.QueryRow(ctx, `
        SELECT AVG(rating)::float8
        FROM jobs
        WHERE company_id = $1 AND rating <> 0
    `, companyID).Scan(&avg)
	if err != nil {
		return fmt.Errorf("average company job ratings: %w", err)
	}
	if avg == nil {
		return nil
	}
	_, err = tx.Exec(ctx, `UPDATE companies SET rating = $2, updated_at = now() WHERE id = $1`, companyID, float32(*avg))
	return err
}

func scanAssignment(row pgx.Row) (domain.Assignment, error) {
	var a domain.Assignment
	err := row.Scan(
		&a.ID,
		&a.JobID,
		&a.LabourerID,
		&a.SkillID,
		&a.Date,
		&a.WageAmount,
		&a.ChargeAmount,
		&a.QualityRating,
		&a.SafetyRating,
		&a.JobRating,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return domain.Assignment{}, err
	}
	return a, nil
}

func normalizePage(page, pageSize int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	} else if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}
