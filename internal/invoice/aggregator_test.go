package invoice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shiftcrew/shiftcrew/internal/domain"
	"github.com/shiftcrew/shiftcrew/internal/repository"
	"github.com/shiftcrew/shiftcrew/internal/testdb"
)

type testEnv struct {
	ctx        context.Context
	repo       *repository.Repository
	aggregator *Aggregator
}

func newTestEnv(t testing.TB) *testEnv {
	t.Helper()
	repo := repository.NewWithPool(testdb.NewPool(t))
	return &testEnv{
		ctx:        context.Background(),
		repo:       repo,
		aggregator: New(repo.Invoices),
	}
}

type billedCompany struct {
	company domain.Company
	job     domain.Job
}

func seedBilledCompany(t testing.TB, env *testEnv, name string, assignments []billedAssignment) billedCompany {
	t.Helper()

	company, err := env.repo.Companies.Create(env.ctx, repository.CompanyCreateParams{Name: name})
	if err != nil {
		t.Fatalf("create company %q: %v", name, err)
	}
	skill, err := env.repo.Skills.Create(env.ctx, repository.SkillCreateParams{
		Name:         name + " Skill",
		PayAmount:    10_000,
		ChargeAmount: 15_000,
	})
	if err != nil {
		t.Fatalf("create skill: %v", err)
	}
	labourer, err := env.repo.Labourers.Create(env.ctx, repository.LabourerCreateParams{
		FirstName: "ada",
		LastName:  "Tester",
		SkillIDs:  []string{skill.ID},
	})
	if err != nil {
		t.Fatalf("create labourer: %v", err)
	}
	job, err := env.repo.Jobs.Create(env.ctx, repository.JobCreateParams{
		CompanyID: company.ID,
		Title:     name + " Job",
		StartDate: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC),
		Weekdays:  domain.AllWeekdays,
	})
	if err != nil {
		t.Fatalf("create job: %v", err)
	}

	for _, a := range assignments {
		_, err := env.repo.Assignments.Create(env.ctx, repository.AssignmentCreateParams{
			JobID:        job.ID,
			LabourerID:   labourer.ID,
			SkillID:      skill.ID,
			Date:         a.date,
			WageAmount:   a.wage,
			ChargeAmount: a.charge,
		})
		if err != nil {
			t.Fatalf("create assignment: %v", err)
		}
	}

	return billedCompany{company: company, job: job}
}

type billedAssignment struct {
	date         time.Time
	wage, charge int64
}

func day(d int) time.Time {
	return time.Date(2024, time.March, d, 0, 0, 0, 0, time.UTC)
}

func TestAggregator_ListInvoices(t *testing.T) {
	env := newTestEnv(t)

	acme := seedBilledCompany(t, env, "Acme", []billedAssignment{
		{date: day(4), wage: 100, charge: 150},
		{date: day(5), wage: 80, charge: 120},
	})
	seedBilledCompany(t, env, "Zenith", []billedAssignment{
		{date: day(4), wage: 200, charge: 260},
	})

	total, summaries, err := env.aggregator.ListInvoices(env.ctx, day(1), day(31), nil, 1, 20)
	if err != nil {
		t.Fatalf("ListInvoices: %v", err)
	}
	if total != 2 {
		t.Fatalf("total = %d, want 2", total)
	}
	if len(summaries) != 2 {
		t.Fatalf("summaries = %d, want 2", len(summaries))
	}

	first := summaries[0]
	if first.CompanyID != acme.company.ID {
		t.Fatalf("first summary company = %s, want %s", first.CompanyName, "Acme")
	}
	if first.AssignmentCount != 2 {
		t.Fatalf("assignment count = %d, want 2", first.AssignmentCount)
	}
	if first.WageTotal != 180 || first.ChargeTotal != 270 {
		t.Fatalf("totals = %d/%d, want 180/270", first.WageTotal, first.ChargeTotal)
	}
	if first.Margin != 90 {
		t.Fatalf("margin = %d, want 90", first.Margin)
	}

	// Restricting to one company filters without changing its totals.
	total, summaries, err = env.aggregator.ListInvoices(env.ctx, day(1), day(31), &acme.company.ID, 1, 20)
	if err != nil {
		t.Fatalf("ListInvoices filtered: %v", err)
	}
	if total != 1 || len(summaries) != 1 {
		t.Fatalf("filtered total/len = %d/%d, want 1/1", total, len(summaries))
	}
	if summaries[0].ChargeTotal != 270 {
		t.Fatalf("filtered charge total = %d, want 270", summaries[0].ChargeTotal)
	}
}

func TestAggregator_HalfOpenRange(t *testing.T) {
	env := newTestEnv(t)

	seedBilledCompany(t, env, "Acme", []billedAssignment{
		{date: day(4), wage: 100, charge: 150},
		{date: day(10), wage: 80, charge: 120},
	})

	// toDate is exclusive: the assignment on day 10 is outside [4, 10).
	_, summaries, err := env.aggregator.ListInvoices(env.ctx, day(4), day(10), nil, 1, 20)
	if err != nil {
		t.Fatalf("ListInvoices: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("summaries = %d, want 1", len(summaries))
	}
	if summaries[0].AssignmentCount != 1 {
		t.Fatalf("assignment count = %d, want 1", summaries[0].AssignmentCount)
	}
	if summaries[0].WageTotal != 100 {
		t.Fatalf("wage total = %d, want 100", summaries[0].WageTotal)
	}
}

func TestAggregator_EmptyRangeAndValidation(t *testing.T) {
	env := newTestEnv(t)

	seedBilledCompany(t, env, "Acme", []billedAssignment{
		{date: day(4), wage: 100, charge: 150},
	})

	total, summaries, err := env.aggregator.ListInvoices(env.ctx, day(20), day(25), nil, 1, 20)
	if err != nil {
		t.Fatalf("empty range should not error: %v", err)
	}
	if total != 0 || len(summaries) != 0 {
		t.Fatalf("empty range total/len = %d/%d, want 0/0", total, len(summaries))
	}

	if _, _, err := env.aggregator.ListInvoices(env.ctx, day(10), day(4), nil, 1, 20); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("inverted range: got %v, want ErrValidation", err)
	}
	if _, _, err := env.aggregator.ListInvoices(env.ctx, time.Time{}, day(4), nil, 1, 20); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("zero fromDate: got %v, want ErrValidation", err)
	}
	if _, _, err := env.aggregator.CompanyInvoiceDetails(env.ctx, "", day(1), day(31), 1, 20); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("empty company id: got %v, want ErrValidation", err)
	}
}

func TestAggregator_PaginationKeepsGroupsWhole(t *testing.T) {
	env := newTestEnv(t)

	for _, name := range []string{"Alpha", "Bravo", "Charlie"} {
		seedBilledCompany(t, env, name, []billedAssignment{
			{date: day(4), wage: 100, charge: 150},
			{date: day(5), wage: 100, charge: 150},
		})
	}

	total, page1, err := env.aggregator.ListInvoices(env.ctx, day(1), day(31), nil, 1, 2)
	if err != nil {
		t.Fatalf("page 1: %v", err)
	}
	if total != 3 {
		t.Fatalf("total = %d, want 3", total)
	}
	if len(page1) != 2 {
		t.Fatalf("page 1 size = %d, want 2", len(page1))
	}

	_, page2, err := env.aggregator.ListInvoices(env.ctx, day(1), day(31), nil, 2, 2)
	if err != nil {
		t.Fatalf("page 2: %v", err)
	}
	if len(page2) != 1 {
		t.Fatalf("page 2 size = %d, want 1", len(page2))
	}

	// Every group carries its full totals regardless of the page it lands on.
	for _, s := range append(page1, page2...) {
		if s.AssignmentCount != 2 || s.WageTotal != 200 {
			t.Fatalf("split group totals for %s: count=%d wage=%d", s.CompanyName, s.AssignmentCount, s.WageTotal)
		}
	}
}

func TestAggregator_CompanyInvoiceDetails(t *testing.T) {
	env := newTestEnv(t)

	acme := seedBilledCompany(t, env, "Acme", []billedAssignment{
		{date: day(5), wage: 80, charge: 120},
		{date: day(4), wage: 100, charge: 150},
	})

	total, lines, err := env.aggregator.CompanyInvoiceDetails(env.ctx, acme.company.ID, day(1), day(31), 1, 20)
	if err != nil {
		t.Fatalf("CompanyInvoiceDetails: %v", err)
	}
	if total != 2 || len(lines) != 2 {
		t.Fatalf("total/len = %d/%d, want 2/2", total, len(lines))
	}
	if !lines[0].Date.Before(lines[1].Date) {
		t.Fatalf("lines not ordered by date: %v then %v", lines[0].Date, lines[1].Date)
	}
	if lines[0].WageAmount != 100 || lines[0].ChargeAmount != 150 {
		t.Fatalf("first line amounts = %d/%d, want 100/150", lines[0].WageAmount, lines[0].ChargeAmount)
	}
	if lines[0].LabourerName != "ada Tester" {
		t.Fatalf("labourer name = %q, want %q", lines[0].LabourerName, "ada Tester")
	}
	if lines[0].JobTitle != "Acme Job" {
		t.Fatalf("job title = %q, want %q", lines[0].JobTitle, "Acme Job")
	}

	// A range with no assignments yields an empty result, not an error.
	total, lines, err = env.aggregator.CompanyInvoiceDetails(env.ctx, acme.company.ID, day(20), day(25), 1, 20)
	if err != nil {
		t.Fatalf("empty range should not error: %v", err)
	}
	if total != 0 || len(lines) != 0 {
		t.Fatalf("empty range total/len = %d/%d, want 0/0", total, len(lines))
	}
}
