// Package invoice aggregates per-assignment wage/charge amounts over a date
// range into per-company invoice summaries and detail lines.
package invoice

import (
	"context"
	"fmt"
	"time"

	"github.com/shiftcrew/shiftcrew/internal/domain"
	"github.com/shiftcrew/shiftcrew/internal/repository"
)

// Aggregator is the read-side billing engine. It never writes: amounts are
// fixed at assignment creation, so invoices are reproducible pure
// aggregations over the assignment log.
type Aggregator struct {
	invoices *repository.InvoicesRepository
}

// New constructs the invoice aggregator.
func New(invoices *repository.InvoicesRepository) *Aggregator {
	return &Aggregator{invoices: invoices}
}

// ListInvoices returns one summary row per company with assignments inside
// [from, to), optionally restricted to a single company. Totals cover the
// full filtered set; pagination is applied after grouping. An empty range
// yields (0, empty slice), not an error.
func (a *Aggregator) ListInvoices(ctx context.Context, from, to time.Time, companyID *string, page, pageSize int) (int64, []domain.InvoiceSummary, error) {
	if err := validateRange(from, to); err != nil {
		return 0, nil, err
	}
	return a.invoices.Summaries(ctx, from, to, companyID, page, pageSize)
}

// CompanyInvoiceDetails returns the per-assignment lines behind one
// company's invoice for [from, to), ordered by work date.
func (a *Aggregator) CompanyInvoiceDetails(ctx context.Context, companyID string, from, to time.Time, page, pageSize int) (int64, []domain.InvoiceLine, error) {
	if err := validateRange(from, to); err != nil {
		return 0, nil, err
	}
	if companyID == "" {
		return 0, nil, fmt.Errorf("%w: companyId is required", domain.ErrValidation)
	}
	return a.invoices.CompanyLines(ctx, companyID, from, to, page, pageSize)
}

func validateRange(from, to time.Time) error {
	if from.IsZero() || to.IsZero() {
		return fmt.Errorf("%w: fromDate and toDate are required", domain.ErrValidation)
	}
	if !to.After(from) {
		return fmt.Errorf("%w: toDate must be after fromDate", domain.ErrValidation)
	}
	return nil
}
