// Package schedule turns a job's date span and working-day set into concrete
// dated assignments.
package schedule

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/shiftcrew/shiftcrew/internal/domain"
	"github.com/shiftcrew/shiftcrew/internal/notify"
	"github.com/shiftcrew/shiftcrew/internal/repository"
)

// Pick names one labourer working one skill on a job's schedule.
type Pick struct {
	LabourerID string
	SkillID    string
}

// Scheduler creates the assignment rows for a job schedule and announces
// them through the notifier.
type Scheduler struct {
	repo     *repository.Repository
	notifier notify.Notifier
	logger   *zap.Logger
}

// New constructs a Scheduler.
func New(repo *repository.Repository, notifier notify.Notifier, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{repo: repo, notifier: notifier, logger: logger}
}

// ScheduleJob creates one assignment per working day of the job for every
// pick, wage and charge defaulted from the skill's rates, all in one batch.
// Each labourer must be registered for the skill they are picked for.
// Notification failures are logged, never surfaced: the schedule is already
// durable at that point.
func (s *Scheduler) ScheduleJob(ctx context.Context, jobID string, picks []Pick) ([]domain.Assignment, error) {
	if len(picks) == 0 {
		return nil, fmt.Errorf("%w: at least one labourer is required", domain.ErrValidation)
	}

	job, err := s.repo.Jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	dates := WorkDates(job.StartDate, job.EndDate, job.Weekdays)
	if len(dates) == 0 {
		return nil, fmt.Errorf("%w: job has no working days in its date span", domain.ErrValidation)
	}

	batch := make([]repository.AssignmentCreateParams, 0, len(dates)*len(picks))
	for _, pick := range picks {
		ok, err := s.repo.Labourers.HasSkill(ctx, pick.LabourerID, pick.SkillID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%w: labourer %s is not registered for skill %s", domain.ErrValidation, pick.LabourerID, pick.SkillID)
		}

		skill, err := s.repo.Skills.GetByID(ctx, pick.SkillID)
		if err != nil {
			return nil, err
		}

		for _, date := range dates {
			batch = append(batch, repository.AssignmentCreateParams{
				JobID:        job.ID,
				LabourerID:   pick.LabourerID,
				SkillID:      pick.SkillID,
				Date:         date,
				WageAmount:   skill.PayAmount,
				ChargeAmount: skill.ChargeAmount,
			})
		}
	}

	created, err := s.repo.Assignments.CreateBatch(ctx, batch)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		if err := s.notifier.ScheduleCreated(ctx, job, created); err != nil {
			s.logger.Warn("schedule notification failed",
				zap.String("job_id", job.ID),
				zap.Error(err))
		}
	}

	return created, nil
}

// WorkDates expands [start, end) into the calendar dates whose weekday is in
// the working set.
func WorkDates(start, end time.Time, days domain.Weekdays) []time.Time {
	dates := make([]time.Time, 0)
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		if days.Includes(d.Weekday()) {
			dates = append(dates, d)
		}
	}
	return dates
}
