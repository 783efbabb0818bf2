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

// CompaniesRepository provides persistence helpers for company profiles.
type CompaniesRepository struct {
	pool *pgxpool.Pool
}

const companyColumns = `
    id,
    name,
    email,
    phone,
    city,
    province,
    country,
    address,
    rating,
    is_active,
    created_at,
    updated_at
`

// CompanyCreateParams bundles the fields required to create a company.
type CompanyCreateParams struct {
	Name     string
	Email    string
	Phone    string
	City     string
	Province string
	Country  string
	Address  string
}

// Create inserts a new company row and returns the stored entity.
func (r *CompaniesRepository) Create(ctx context.Context, params CompanyCreateParams) (domain.Company, error) {
	query := fmt.Sprintf(`
        INSERT INTO companies (id, name, email, phone, city, province, country, address)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING %s
    `, companyColumns)

	row := r.pool.QueryRow(ctx, query,
		uuid.NewString(), params.Name, params.Email, params.Phone,
		params.City, params.Province, params.Country, params.Address)
	company, err := scanCompany(row)
	if err != nil {
		return domain.Company{}, mapConstraintErr(err)
	}
	return company, nil
}

// GetByID fetches a company by its identifier.
func (r *CompaniesRepository) GetByID(ctx context.Context, id string) (domain.Company, error) {
	query := fmt.Sprintf(`SELECT %s FROM companies WHERE id = $1`, companyColumns)
	company, err := scanCompany(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Company{}, domain.ErrNotFound
		}
		return domain.Company{}, err
	}
	return company, nil
}

// Update rewrites the mutable company fields. The derived rating is owned by
// the rollup engine and left alone here.
func (r *CompaniesRepository) Update(ctx context.Context, company domain.Company) (domain.Company, error) {
	query := fmt.Sprintf(`
        UPDATE companies
        SET name = $2,
            email = $3,
            phone = $4,
            city = $5,
            province = $6,
            country = $7,
            address = $8,
            is_active = $9,
            updated_at = now()
        WHERE id = $1
        RETURNING %s
    `, companyColumns)

	row := r.pool.QueryRow(ctx, query, company.ID, company.Name, company.Email,
		company.Phone, company.City, company.Province, company.Country,
		company.Address, company.IsActive)
	updated, err := scanCompany(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Company{}, domain.ErrNotFound
		}
		return domain.Company{}, mapConstraintErr(err)
	}
	return updated, nil
}

// List returns companies ordered by name.
func (r *CompaniesRepository) List(ctx context.Context, page, pageSize int) (int64, []domain.Company, error) {
	page, pageSize = normalizePage(page, pageSize)

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM companies`).Scan(&total); err != nil {
		return 0, nil, fmt.Errorf("count companies: %w", err)
	}

	query := fmt.Sprintf(`
        SELECT %s FROM companies
        ORDER BY name, id
        LIMIT %d OFFSET %d
    `, companyColumns, pageSize, (page-1)*pageSize)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return 0, nil, err
	}
	defer rows.Close()

	items := make([]domain.Company, 0)
	for rows.Next() {
		company, err := scanCompany(rows)
		if err != nil {
			return 0, nil, err
		}
		items = append(items, company)
	}
	if err := rows.Err(); err != nil {
		return 0, nil, err
	}

	return total, items, nil
}

func scanCompany(row pgx.Row) (domain.Company, error) {
	var c domain.Company
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Email,
		&c.Phone,
		&c.City,
		&c.Province,
		&c.Country,
		&c.Address,
		&c.Rating,
		&c.IsActive,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return domain.Company{}, err
	}
	return c, nil
}
