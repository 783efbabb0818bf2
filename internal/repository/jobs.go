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

// JobsRepository provides persistence helpers for job postings.
type JobsRepository struct {
	pool *pgxpool.Pool
}

const jobColumns = `
    id,
    company_id,
    title,
    description,
    city,
    province,
    country,
    address,
    rating,
    start_date,
    end_date,
    weekdays,
    is_active,
    created_at,
    updated_at
`

// JobCreateParams bundles the fields required to create a job.
type JobCreateParams struct {
	CompanyID   string
	Title       string
	Description string
	City        string
	Province    string
	Country     string
	Address     string
	StartDate   time.Time
	EndDate     time.Time
	Weekdays    domain.Weekdays
}

// JobListFilters encapsulates search and pagination options. The date range
// filters on start_date, half-open.
type JobListFilters struct {
	CompanyID *string
	From      *time.Time
	To        *time.Time
	Page      int
	PageSize  int
}

// JobListResult returns the paginated payload.
type JobListResult struct {
	TotalRows int64
	Items     []domain.Job
}

// Create inserts a new job row and returns the stored entity.
func (r *JobsRepository) Create(ctx context.Context, params JobCreateParams) (domain.Job, error) {
	if !params.EndDate.After(params.StartDate) {
		return domain.Job{}, fmt.Errorf("%w: endDate must be after startDate", domain.ErrValidation)
	}

	query := fmt.Sprintf(`
        INSERT INTO jobs (id, company_id, title, description, city, province, country, address, start_date, end_date, weekdays)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING %s
    `, jobColumns)

	row := r.pool.QueryRow(ctx, query,
		uuid.NewString(), params.CompanyID, params.Title, params.Description,
		params.City, params.Province, params.Country, params.Address,
		params.StartDate, params.EndDate, int16(params.Weekdays))
	job, err := scanJob(row)
	if err != nil {
		return domain.Job{}, mapConstraintErr(err)
	}
	return job, nil
}

// GetByID fetches a job by its identifier.
func (r *JobsRepository) GetByID(ctx context.Context, id string) (domain.Job, error) {
	query := fmt.Sprintf(`SELECT %s FROM jobs WHERE id = $1`, jobColumns)
	job, err := scanJob(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Job{}, domain.ErrNotFound
		}
		return domain.Job{}, err
	}
	return job, nil
}

// Update rewrites the mutable job fields. The derived rating is never
// written here; only the rollup engine touches it.
func (r *JobsRepository) Update(ctx context.Context, job domain.Job) (domain.Job, error) {
	if !job.EndDate.After(job.StartDate) {
		return domain.Job{}, fmt.Errorf("%w: endDate must be after startDate", domain.ErrValidation)
	}

	query := fmt.Sprintf(`
        UPDATE jobs
        SET title = $2,
            description = $3,
            city = $4,
            province = $5,
            country = $6,
            address = $7,
            start_date = $8,
            end_date = $9,
            weekdays = $10,
            is_active = $11,
            updated_at = now()
        WHERE id = $1
        RETURNING %s
    `, jobColumns)

	row := r.pool.QueryRow(ctx, query, job.ID, job.Title, job.Description,
		job.City, job.Province, job.Country, job.Address,
		job.StartDate, job.EndDate, int16(job.Weekdays), job.IsActive)
	updated, err := scanJob(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Job{}, domain.ErrNotFound
		}
		return domain.Job{}, mapConstraintErr(err)
	}
	return updated, nil
}

// List returns jobs matching the provided filters, newest first.
func (r *JobsRepository) List(ctx context.Context, filters JobListFilters) (JobListResult, error) {
	page, pageSize := normalizePage(filters.Page, filters.PageSize)

	where := make([]string, 0)
	args := make([]interface{}, 0)
	arg := func(value interface{}) string {
		args = append(args, value)
		return fmt.Sprintf("$%d", len(args))
	}

	if filters.CompanyID != nil {
		where = append(where, fmt.Sprintf("company_id = %s", arg(*filters.CompanyID)))
	}
	if filters.From != nil {
		where = append(where, fmt.Sprintf("start_date >= %s", arg(*filters.From)))
	}
	if filters.To != nil {
		where = append(where, fmt.Sprintf("start_date < %s", arg(*filters.To)))
	}

	whereClause := ""
	if len(where) > 0 {
		whereClause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int64
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM jobs"+whereClause, args...).Scan(&total); err != nil {
		return JobListResult{}, fmt.Errorf("count jobs: %w", err)
	}

	query := fmt.Sprintf(`
        SELECT %s FROM jobs%s
        ORDER BY created_at DESC, id DESC
        LIMIT %d OFFSET %d
    `, jobColumns, whereClause, pageSize, (page-1)*pageSize)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return JobListResult{}, err
	}
	defer rows.Close()

	items := make([]domain.Job, 0)
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return JobListResult{}, err
		}
		items = append(items, job)
	}
	if err := rows.Err(); err != nil {
		return JobListResult{}, err
	}

	return JobListResult{TotalRows: total, Items: items}, nil
}

// RatingReport lists job ratings joined with the owning company, optionally
// filtered by company and start-date range.
func (r *JobsRepository) RatingReport(ctx context.Context, filters JobListFilters) (int64, []domain.JobRatingRow, error) {
	page, pageSize := normalizePage(filters.Page, filters.PageSize)

	where := []string{"j.rating <> 0"}
	args := make([]interface{}, 0)
	arg := func(value interface{}) string {
		args = append(args, value)
		return fmt.Sprintf("$%d", len(args))
	}

	if filters.CompanyID != nil {
		where = append(where, fmt.Sprintf("j.company_id = %s", arg(*filters.CompanyID)))
	}
	if filters.From != nil {
		where = append(where, fmt.Sprintf("j.start_date >= %s", arg(*filters.From)))
	}
	if filters.To != nil {
		where = append(where, fmt.Sprintf("j.start_date < %s", arg(*filters.To)))
	}

	whereClause := " WHERE " + strings.Join(where, " AND ")

	var total int64
	countQuery := "SELECT COUNT(*) FROM jobs j" + whereClause
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return 0, nil, fmt.Errorf("count job ratings: %w", err)
	}

	query := fmt.Sprintf(`
        SELECT j.id, j.title, c.id, c.name, j.rating, j.start_date, j.end_date
        FROM jobs j
        JOIN companies c ON c.id = j.company_id%s
        ORDER BY j.rating DESC, j.id
        LIMIT %d OFFSET %d
    `, whereClause, pageSize, (page-1)*pageSize)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return 0, nil, err
	}
	defer rows.Close()

	report := make([]domain.JobRatingRow, 0)
	for rows.Next() {
		var row domain.JobRatingRow
		if err := rows.Scan(&row.JobID, &row.JobTitle, &row.CompanyID, &row.CompanyName, &row.Rating, &row.StartDate, &row.EndDate); err != nil {
			return 0, nil, err
		}
		report = append(report, row)
	}
	if err := rows.Err(); err != nil {
		return 0, nil, err
	}

	return total, report, nil
}

func scanJob(row pgx.Row) (domain.Job, error) {
	var (
		job      domain.Job
		weekdays int16
	)
	err := row.Scan(
		&job.ID,
		&job.CompanyID,
		&job.Title,
		&job.Description,
		&job.City,
		&job.Province,
		&job.Country,
		&job.Address,
		&job.Rating,
		&job.StartDate,
		&job.EndDate,
		&weekdays,
		&job.IsActive,
		&job.CreatedAt,
		&job.UpdatedAt,
	)
	if err != nil {
		return domain.Job{}, err
	}
	job.Weekdays = domain.Weekdays(weekdays)
	return job, nil
}
