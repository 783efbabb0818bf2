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

// SkillsRepository provides persistence helpers for billable skills.
type SkillsRepository struct {
	pool *pgxpool.Pool
}

const skillColumns = `
    id,
    name,
    pay_amount,
    charge_amount,
    is_active,
    created_at,
    updated_at
`

// SkillCreateParams bundles the fields required to create a skill.
type SkillCreateParams struct {
	Name         string
	PayAmount    int64
	ChargeAmount int64
}

func (p SkillCreateParams) validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if p.PayAmount < 0 || p.ChargeAmount < 0 {
		return fmt.Errorf("%w: amounts must be non-negative", domain.ErrValidation)
	}
	return nil
}

// Create inserts a new skill. Duplicate names fail with domain.ErrValidation
// via the unique constraint.
func (r *SkillsRepository) Create(ctx context.Context, params SkillCreateParams) (domain.Skill, error) {
	if err := params.validate(); err != nil {
		return domain.Skill{}, err
	}

	query := fmt.Sprintf(`
        INSERT INTO skills (id, name, pay_amount, charge_amount)
        VALUES ($1,$2,$3,$4)
        RETURNING %s
    `, skillColumns)

	row := r.pool.QueryRow(ctx, query, uuid.NewString(), params.Name, params.PayAmount, params.ChargeAmount)
	skill, err := scanSkill(row)
	if err != nil {
		return domain.Skill{}, mapConstraintErr(err)
	}
	return skill, nil
}

// GetByID fetches a skill by its identifier.
func (r *SkillsRepository) GetByID(ctx context.Context, id string) (domain.Skill, error) {
	query := fmt.Sprintf(`SELECT %s FROM skills WHERE id = $1`, skillColumns)
	skill, err := scanSkill(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Skill{}, domain.ErrNotFound
		}
		return domain.Skill{}, err
	}
	return skill, nil
}

// Update rewrites skill fields.
func (r *SkillsRepository) Update(ctx context.Context, skill domain.Skill) (domain.Skill, error) {
	if skill.PayAmount < 0 || skill.ChargeAmount < 0 {
		return domain.Skill{}, fmt.Errorf("%w: amounts must be non-negative", domain.ErrValidation)
	}

	query := fmt.Sprintf(`
        UPDATE skills
        SET name = $2,
            pay_amount = $3,
            charge_amount = $4,
            is_active = $5,
            updated_at = now()
        WHERE id = $1
        RETURNING %s
    `, skillColumns)

	row := r.pool.QueryRow(ctx, query, skill.ID, skill.Name, skill.PayAmount, skill.ChargeAmount, skill.IsActive)
	updated, err := scanSkill(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Skill{}, domain.ErrNotFound
		}
		return domain.Skill{}, mapConstraintErr(err)
	}
	return updated, nil
}

// List returns skills ordered by name.
func (r *SkillsRepository) List(ctx context.Context, page, pageSize int) (int64, []domain.Skill, error) {
	page, pageSize = normalizePage(page, pageSize)

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM skills`).Scan(&total); err != nil {
		return 0, nil, fmt.Errorf("count skills: %w", err)
	}

	query := fmt.Sprintf(`
        SELECT %s FROM skills
        ORDER BY name, id
        LIMIT %d OFFSET %d
    `, skillColumns, pageSize, (page-1)*pageSize)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return 0, nil, err
	}
	defer rows.Close()

	items := make([]domain.Skill, 0)
	for rows.Next() {
		skill, err := scanSkill(rows)
		if err != nil {
			return 0, nil, err
		}
		items = append(items, skill)
	}
	if err := rows.Err(); err != nil {
		return 0, nil, err
	}

	return total, items, nil
}

func scanSkill(row pgx.Row) (domain.Skill, error) {
	var s domain.Skill
	err := row.Scan(
		&s.ID,
		&s.Name,
		&s.PayAmount,
		&s.ChargeAmount,
		&s.IsActive,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return domain.Skill{}, err
	}
	return s, nil
}
