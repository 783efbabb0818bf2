package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shiftcrew/shiftcrew/internal/domain"
	"github.com/shiftcrew/shiftcrew/internal/testdb"
)

type testEnv struct {
	ctx        context.Context
	repository *Repository
}

func newTestEnv(t testing.TB) *testEnv {
	t.Helper()
	pool := testdb.NewPool(t)
	return &testEnv{
		ctx:        context.Background(),
		repository: NewWithPool(pool),
	}
}

func mustCreateCompany(t testing.TB, env *testEnv, name string) domain.Company {
	t.Helper()
	company, err := env.repository.Companies.Create(env.ctx, CompanyCreateParams{
		Name:    name,
		Email:   name + "@example.com",
		City:    "Vancouver",
		Country: "Canada",
	})
	if err != nil {
		t.Fatalf("create company %q: %v", name, err)
	}
	return company
}

func mustCreateSkill(t testing.TB, env *testEnv, name string, pay, charge int64) domain.Skill {
	t.Helper()
	skill, err := env.repository.Skills.Create(env.ctx, SkillCreateParams{
		Name:         name,
		PayAmount:    pay,
		ChargeAmount: charge,
	})
	if err != nil {
		t.Fatalf("create skill %q: %v", name, err)
	}
	return skill
}

func mustCreateLabourer(t testing.TB, env *testEnv, firstName string, skillIDs ...string) domain.Labourer {
	t.Helper()
	labourer, err := env.repository.Labourers.Create(env.ctx, LabourerCreateParams{
		FirstName:    firstName,
		LastName:     "Tester",
		Email:        firstName + "@example.com",
		Availability: domain.AllWeekdays,
		SkillIDs:     skillIDs,
	})
	if err != nil {
		t.Fatalf("create labourer %q: %v", firstName, err)
	}
	return labourer
}

func mustCreateJob(t testing.TB, env *testEnv, companyID, title string) domain.Job {
	t.Helper()
	job, err := env.repository.Jobs.Create(env.ctx, JobCreateParams{
		CompanyID: companyID,
		Title:     title,
		City:      "Vancouver",
		Country:   "Canada",
		StartDate: time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC),
		Weekdays:  domain.Monday | domain.Wednesday | domain.Friday,
	})
	if err != nil {
		t.Fatalf("create job %q: %v", title, err)
	}
	return job
}

func mustCreateAssignment(t testing.TB, env *testEnv, jobID, labourerID, skillID string, date time.Time) domain.Assignment {
	t.Helper()
	assignment, err := env.repository.Assignments.Create(env.ctx, AssignmentCreateParams{
		JobID:        jobID,
		LabourerID:   labourerID,
		SkillID:      skillID,
		Date:         date,
		WageAmount:   10_000,
		ChargeAmount: 15_000,
	})
	if err != nil {
		t.Fatalf("create assignment: %v", err)
	}
	return assignment
}

func TestAssignmentsRepository_CreateGetList(t *testing.T) {
	env := newTestEnv(t)

	company := mustCreateCompany(t, env, "Acme Builders")
	skill := mustCreateSkill(t, env, "Carpenter", 10_000, 15_000)
	labourer := mustCreateLabourer(t, env, "ada", skill.ID)
	job := mustCreateJob(t, env, company.ID, "Site Framing")

	day1 := time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, time.March, 6, 0, 0, 0, 0, time.UTC)
	first := mustCreateAssignment(t, env, job.ID, labourer.ID, skill.ID, day1)
	mustCreateAssignment(t, env, job.ID, labourer.ID, skill.ID, day2)

	got, err := env.repository.Assignments.GetByID(env.ctx, first.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.WageAmount != 10_000 || got.ChargeAmount != 15_000 {
		t.Fatalf("amounts = %d/%d, want 10000/15000", got.WageAmount, got.ChargeAmount)
	}
	if got.JobRating != nil {
		t.Fatalf("new assignment should have no job rating, got %v", *got.JobRating)
	}

	if _, err := env.repository.Assignments.GetByID(env.ctx, "non-existent"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown ID, got %v", err)
	}

	result, err := env.repository.Assignments.List(env.ctx, AssignmentListFilters{
		CompanyID: &company.ID,
		Page:      1,
		PageSize:  1,
	})
	if err != nil {
		t.Fatalf("List first page: %v", err)
	}
	if result.TotalRows != 2 {
		t.Fatalf("TotalRows = %d, want 2", result.TotalRows)
	}
	if len(result.Items) != 1 {
		t.Fatalf("first page size = %d, want 1", len(result.Items))
	}

	second, err := env.repository.Assignments.List(env.ctx, AssignmentListFilters{
		CompanyID: &company.ID,
		Page:      2,
		PageSize:  1,
	})
	if err != nil {
		t.Fatalf("List second page: %v", err)
	}
	if len(second.Items) != 1 {
		t.Fatalf("second page size = %d, want 1", len(second.Items))
	}
	if result.Items[0].ID == second.Items[0].ID {
		t.Fatalf("pagination returned duplicate assignment")
	}

	// Half-open range: day2 is excluded when To == day2.
	ranged, err := env.repository.Assignments.List(env.ctx, AssignmentListFilters{
		From: &day1,
		To:   &day2,
	})
	if err != nil {
		t.Fatalf("List ranged: %v", err)
	}
	if ranged.TotalRows != 1 {
		t.Fatalf("ranged TotalRows = %d, want 1", ranged.TotalRows)
	}
	if ranged.Items[0].ID != first.ID {
		t.Fatalf("ranged item = %s, want %s", ranged.Items[0].ID, first.ID)
	}
}

func TestAssignmentsRepository_CreateValidation(t *testing.T) {
	env := newTestEnv(t)

	company := mustCreateCompany(t, env, "Acme Builders")
	skill := mustCreateSkill(t, env, "Carpenter", 10_000, 15_000)
	labourer := mustCreateLabourer(t, env, "ada", skill.ID)
	job := mustCreateJob(t, env, company.ID, "Site Framing")

	date := time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)

	_, err := env.repository.Assignments.Create(env.ctx, AssignmentCreateParams{
		JobID:      job.ID,
		LabourerID: labourer.ID,
		SkillID:    skill.ID,
		Date:       date,
		WageAmount: -1,
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("negative wage: got %v, want ErrValidation", err)
	}

	_, err = env.repository.Assignments.Create(env.ctx, AssignmentCreateParams{
		JobID:      "missing-job",
		LabourerID: labourer.ID,
		SkillID:    skill.ID,
		Date:       date,
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("missing job reference: got %v, want ErrValidation", err)
	}
}

func TestAssignmentsRepository_WorkRatings(t *testing.T) {
	env := newTestEnv(t)

	company := mustCreateCompany(t, env, "Acme Builders")
	skill := mustCreateSkill(t, env, "Carpenter", 10_000, 15_000)
	labourer := mustCreateLabourer(t, env, "ada", skill.ID)
	job := mustCreateJob(t, env, company.ID, "Site Framing")
	assignment := mustCreateAssignment(t, env, job.ID, labourer.ID, skill.ID,
		time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC))

	quality := int16(4)
	if err := env.repository.Assignments.UpdateWorkRatings(env.ctx, assignment.ID, &quality, nil); err != nil {
		t.Fatalf("set quality: %v", err)
	}

	got, err := env.repository.Assignments.GetByID(env.ctx, assignment.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.QualityRating == nil || *got.QualityRating != 4 {
		t.Fatalf("quality = %v, want 4", got.QualityRating)
	}
	if got.SafetyRating != nil {
		t.Fatalf("safety should stay unset, got %v", *got.SafetyRating)
	}

	// Unlike the labourer's job rating, these grades may be revised.
	quality = 2
	safety := int16(5)
	if err := env.repository.Assignments.UpdateWorkRatings(env.ctx, assignment.ID, &quality, &safety); err != nil {
		t.Fatalf("revise ratings: %v", err)
	}
	got, err = env.repository.Assignments.GetByID(env.ctx, assignment.ID)
	if err != nil {
		t.Fatalf("GetByID after revision: %v", err)
	}
	if got.QualityRating == nil || *got.QualityRating != 2 {
		t.Fatalf("revised quality = %v, want 2", got.QualityRating)
	}
	if got.SafetyRating == nil || *got.SafetyRating != 5 {
		t.Fatalf("safety = %v, want 5", got.SafetyRating)
	}

	bad := int16(6)
	if err := env.repository.Assignments.UpdateWorkRatings(env.ctx, assignment.ID, &bad, nil); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("out-of-range rating: got %v, want ErrValidation", err)
	}
	if err := env.repository.Assignments.UpdateWorkRatings(env.ctx, "non-existent", &quality, nil); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("missing assignment: got %v, want ErrNotFound", err)
	}
}

func TestSkillsRepository_DuplicateName(t *testing.T) {
	env := newTestEnv(t)

	mustCreateSkill(t, env, "Welder", 12_000, 18_000)
	_, err := env.repository.Skills.Create(env.ctx, SkillCreateParams{
		Name:         "Welder",
		PayAmount:    9_000,
		ChargeAmount: 11_000,
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("duplicate skill name: got %v, want ErrValidation", err)
	}
}

func TestLabourersRepository_SkillLinks(t *testing.T) {
	env := newTestEnv(t)

	welding := mustCreateSkill(t, env, "Welder", 12_000, 18_000)
	carpentry := mustCreateSkill(t, env, "Carpenter", 10_000, 15_000)
	labourer := mustCreateLabourer(t, env, "ada", welding.ID)

	has, err := env.repository.Labourers.HasSkill(env.ctx, labourer.ID, welding.ID)
	if err != nil {
		t.Fatalf("HasSkill: %v", err)
	}
	if !has {
		t.Fatalf("expected labourer to have welding skill")
	}

	has, err = env.repository.Labourers.HasSkill(env.ctx, labourer.ID, carpentry.ID)
	if err != nil {
		t.Fatalf("HasSkill: %v", err)
	}
	if has {
		t.Fatalf("labourer should not have carpentry skill")
	}

	// Linking an unknown skill rolls the whole insert back.
	_, err = env.repository.Labourers.Create(env.ctx, LabourerCreateParams{
		FirstName: "grace",
		LastName:  "Tester",
		SkillIDs:  []string{"missing-skill"},
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("unknown skill link: got %v, want ErrValidation", err)
	}
}

func TestJobsRepository_CreateValidation(t *testing.T) {
	env := newTestEnv(t)

	company := mustCreateCompany(t, env, "Acme Builders")

	_, err := env.repository.Jobs.Create(env.ctx, JobCreateParams{
		CompanyID: company.ID,
		Title:     "Backwards Job",
		StartDate: time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("inverted dates: got %v, want ErrValidation", err)
	}

	_, err = env.repository.Jobs.Create(env.ctx, JobCreateParams{
		CompanyID: "missing-company",
		Title:     "Orphan Job",
		StartDate: time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("missing company reference: got %v, want ErrValidation", err)
	}
}

func TestJobsRepository_UpdateAndList(t *testing.T) {
	env := newTestEnv(t)

	company := mustCreateCompany(t, env, "Acme Builders")
	job := mustCreateJob(t, env, company.ID, "Site Framing")

	job.Title = "Site Framing Phase 2"
	job.IsActive = false
	updated, err := env.repository.Jobs.Update(env.ctx, job)
	if err != nil {
		t.Fatalf("update job: %v", err)
	}
	if updated.Title != "Site Framing Phase 2" || updated.IsActive {
		t.Fatalf("update not applied: %+v", updated)
	}

	// Updates guard the date span the same way Create does.
	inverted := updated
	inverted.StartDate = time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC)
	inverted.EndDate = time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)
	if _, err := env.repository.Jobs.Update(env.ctx, inverted); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("inverted span update: got %v, want ErrValidation", err)
	}

	mustCreateJob(t, env, company.ID, "Roofing")

	result, err := env.repository.Jobs.List(env.ctx, JobListFilters{CompanyID: &company.ID})
	if err != nil {
		t.Fatalf("list jobs: %v", err)
	}
	if result.TotalRows != 2 {
		t.Fatalf("TotalRows = %d, want 2", result.TotalRows)
	}
}

func BenchmarkAssignmentsRepositoryCreate(b *testing.B) {
	env := newTestEnv(b)

	company := mustCreateCompany(b, env, "Bench Co")
	skill := mustCreateSkill(b, env, "Bench Skill", 10_000, 15_000)
	labourer := mustCreateLabourer(b, env, "bench", skill.ID)
	job := mustCreateJob(b, env, company.ID, "Bench Job")

	base := time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := env.repository.Assignments.Create(env.ctx, AssignmentCreateParams{
			JobID:        job.ID,
			LabourerID:   labourer.ID,
			SkillID:      skill.ID,
			Date:         base.AddDate(0, 0, i),
			WageAmount:   10_000,
			ChargeAmount: 15_000,
		})
		if err != nil {
			b.Fatalf("create assignment: %v", err)
		}
	}
}
