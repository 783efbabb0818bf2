package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shiftcrew/shiftcrew/internal/domain"
)

// LabourersRepository provides persistence helpers for labourer profiles.
type LabourersRepository struct {
	pool *pgxpool.Pool
}

const labourerColumns = `
    id,
    first_name,
    last_name,
    personal_id,
    email,
    phone,
    city,
    province,
    country,
    address,
    availability,
    safety_rating,
    quality_rating,
    is_active,
    created_at,
    updated_at
`

// LabourerCreateParams bundles the fields required to create a labourer.
type LabourerCreateParams struct {
	FirstName    string
	LastName     string
	PersonalID   string
	Email        string
	Phone        string
	City         string
	Province     string
	Country      string
	Address      string
	Availability domain.Weekdays
	SkillIDs     []string
}

// Create inserts a labourer and links the given skills atomically.
func (r *LabourersRepository) Create(ctx context.Context, params LabourerCreateParams) (domain.Labourer, error) {
	if params.FirstName == "" || params.LastName == "" {
		return domain.Labourer{}, fmt.Errorf("%w: firstName and lastName are required", domain.ErrValidation)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.Labourer{}, fmt.Errorf("begin labourer insert: %w", err)
	}
	defer tx.Rollback(ctx)

	query := fmt.Sprintf(`
        INSERT INTO labourers (id, first_name, last_name, personal_id, email, phone, city, province, country, address, availability)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING %s
    `, labourerColumns)

	row := tx.QueryRow(ctx, query,
		uuid.NewString(), params.FirstName, params.LastName, params.PersonalID,
		params.Email, params.Phone, params.City, params.Province,
		params.Country, params.Address, int16(params.Availability))
	labourer, err := scanLabourer(row)
	if err != nil {
		return domain.Labourer{}, mapConstraintErr(err)
	}

	for _, skillID := range params.SkillIDs {
		if _, err := tx.Exec(ctx, `
            INSERT INTO labourer_skills (labourer_id, skill_id) VALUES ($1,$2)
        `, labourer.ID, skillID); err != nil {
			return domain.Labourer{}, mapConstraintErr(err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Labourer{}, fmt.Errorf("commit labourer insert: %w", err)
	}
	return labourer, nil
}

// GetByID fetches a labourer by its identifier.
func (r *LabourersRepository) GetByID(ctx context.Context, id string) (domain.Labourer, error) {
	query := fmt.Sprintf(`SELECT %s FROM labourers WHERE id = $1`, labourerColumns)
	labourer, err := scanLabourer(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Labourer{}, domain.ErrNotFound
		}
		return domain.Labourer{}, err
	}
	return labourer, nil
}

// Update rewrites the mutable labourer fields.
func (r *LabourersRepository) Update(ctx context.Context, labourer domain.Labourer) (domain.Labourer, error) {
	query := fmt.Sprintf(`
        UPDATE labourers
        SET first_name = $2,
            last_name = $3,
            personal_id = $4,
            email = $5,
            phone = $6,
            city = $7,
            province = $8,
            country = $9,
            address = $10,
            availability = $11,
            is_active = $12,
            updated_at = now()
        WHERE id = $1
        RETURNING %s
    `, labourerColumns)

	row := r.pool.QueryRow(ctx, query, labourer.ID, labourer.FirstName, labourer.LastName,
		labourer.PersonalID, labourer.Email, labourer.Phone, labourer.City,
		labourer.Province, labourer.Country, labourer.Address,
		int16(labourer.Availability), labourer.IsActive)
	updated, err := scanLabourer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Labourer{}, domain.ErrNotFound
		}
		return domain.Labourer{}, mapConstraintErr(err)
	}
	return updated, nil
}

// List returns labourers, either newest first or ordered by quality rating
// when topRated is set.
func (r *LabourersRepository) List(ctx context.Context, page, pageSize int, topRated bool) (int64, []domain.Labourer, error) {
	page, pageSize = normalizePage(page, pageSize)

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM labourers`).Scan(&total); err != nil {
		return 0, nil, fmt.Errorf("count labourers: %w", err)
	}

	order := "created_at DESC, id DESC"
	if topRated {
		order = "quality_rating DESC, id"
	}

	query := fmt.Sprintf(`
        SELECT %s FROM labourers
        ORDER BY %s
        LIMIT %d OFFSET %d
    `, labourerColumns, order, pageSize, (page-1)*pageSize)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return 0, nil, err
	}
	defer rows.Close()

	items := make([]domain.Labourer, 0)
	for rows.Next() {
		labourer, err := scanLabourer(rows)
		if err != nil {
			return 0, nil, err
		}
		items = append(items, labourer)
	}
	if err := rows.Err(); err != nil {
		return 0, nil, err
	}

	return total, items, nil
}

// HasSkill reports whether the labourer is registered for the given skill.
func (r *LabourersRepository) HasSkill(ctx context.Context, labourerID, skillID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
        SELECT EXISTS (
            SELECT 1 FROM labourer_skills WHERE labourer_id = $1 AND skill_id = $2
        )
    `, labourerID, skillID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check labourer skill: %w", err)
	}
	return exists, nil
}

func scanLabourer(row pgx.Row) (domain.Labourer, error) {
	var (
		l            domain.Labourer
		availability int16
	)
	err := row.Scan(
		&l.ID,
		&l.FirstName,
		&l.LastName,
		&l.PersonalID,
		&l.Email,
		&l.Phone,
		&l.City,
		&l.Province,
		&l.Country,
		&l.Address,
		&availability,
		&l.SafetyRating,
		&l.QualityRating,
		&l.IsActive,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	if err != nil {
		return domain.Labourer{}, err
	}
	l.Availability = domain.Weekdays(availability)
	return l, nil
}
