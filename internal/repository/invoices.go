package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shiftcrew/shiftcrew/internal/domain"
)

// InvoicesRepository runs the read-side billing aggregations over the
// assignment log. All queries use the half-open range [from, to).
type InvoicesRepository struct {
	pool *pgxpool.Pool
}

// Summaries groups assignments in range by company and sums charge and wage
// amounts. The returned total counts companies in the full filtered set;
// pagination applies after grouping, so page boundaries never split or
// double-count a company's totals.
func (r *InvoicesRepository) Summaries(ctx context.Context, from, to time.Time, companyID *string, page, pageSize int) (int64, []domain.InvoiceSummary, error) {
	page, pageSize = normalizePage(page, pageSize)

	companyFilter := ""
	args := []interface{}{from, to}
	if companyID != nil {
		args = append(args, *companyID)
		companyFilter = " AND c.id = $3"
	}

	var total int64
	countQuery := fmt.Sprintf(`
        SELECT COUNT(DISTINCT c.id)
        FROM assignments a
        JOIN jobs j ON j.id = a.job_id
        JOIN companies c ON c.id = j.company_id
        WHERE a.date >= $1 AND a.date < $2%s
    `, companyFilter)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return 0, nil, fmt.Errorf("count invoice summaries: %w", err)
	}

	query := fmt.Sprintf(`
        SELECT c.id,
               c.name,
               COUNT(*)::int8,
               SUM(a.wage_amount)::int8,
               SUM(a.charge_amount)::int8
        FROM assignments a
        JOIN jobs j ON j.id = a.job_id
        JOIN companies c ON c.id = j.company_id
        WHERE a.date >= $1 AND a.date < $2%s
        GROUP BY c.id, c.name
        ORDER BY c.name, c.id
        LIMIT %d OFFSET %d
    `, companyFilter, pageSize, (page-1)*pageSize)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return 0, nil, err
	}
	defer rows.Close()

	summaries := make([]domain.InvoiceSummary, 0)
	for rows.Next() {
		var s domain.InvoiceSummary
		if err := rows.Scan(&s.CompanyID, &s.CompanyName, &s.AssignmentCount, &s.WageTotal, &s.ChargeTotal); err != nil {
			return 0, nil, err
		}
		s.Margin = s.ChargeTotal - s.WageTotal
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return 0, nil, err
	}

	return total, summaries, nil
}

// CompanyLines lists the per-assignment detail rows behind one company's
// invoice, ordered by work date.
func (r *InvoicesRepository) CompanyLines(ctx context.Context, companyID string, from, to time.Time, page, pageSize int) (int64, []domain.InvoiceLine, error) {
	page, pageSize = normalizePage(page, pageSize)

	var total int64
	err := r.pool.QueryRow(ctx, `
        SELECT COUNT(*)
        FROM assignments a
        JOIN jobs j ON j.id = a.job_id
        WHERE j.company_id = $1 AND a.date >= $2 AND a.date < $3
    `, companyID, from, to).Scan(&total)
	if err != nil {
		return 0, nil, fmt.Errorf("count invoice lines: %w", err)
	}

	query := fmt.Sprintf(`
        SELECT a.id,
               j.title,
               s.name,
               l.first_name || ' ' || l.last_name,
               a.date,
               a.wage_amount,
               a.charge_amount
        FROM assignments a
        JOIN jobs j ON j.id = a.job_id
        JOIN skills s ON s.id = a.skill_id
        JOIN labourers l ON l.id = a.labourer_id
        WHERE j.company_id = $1 AND a.date >= $2 AND a.date < $3
        ORDER BY a.date, a.id
        LIMIT %d OFFSET %d
    `, pageSize, (page-1)*pageSize)

	rows, err := r.pool.Query(ctx, query, companyID, from, to)
	if err != nil {
		return 0, nil, err
	}
	defer rows.Close()

	lines := make([]domain.InvoiceLine, 0)
	for rows.Next() {
		var line domain.InvoiceLine
		if err := rows.Scan(&line.AssignmentID, &line.JobTitle, &line.SkillName, &line.LabourerName, &line.Date, &line.WageAmount, &line.ChargeAmount); err != nil {
			return 0, nil, err
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return 0, nil, err
	}

	return total, lines, nil
}
