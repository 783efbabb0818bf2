package domain

import "time"

// Job is a company's posting that labourers are assigned to. Rating is
// derived: the mean of the non-null, non-zero job ratings across the job's
// assignments, maintained by the rollup engine only.
type Job struct {
	ID          string
	CompanyID   string
	Title       string
	Description string
	City        string
	Province    string
	Country     string
	Address     string
	Rating      float32
	StartDate   time.Time
	EndDate     time.Time
	Weekdays    Weekdays
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// JobRatingRow is one line of the job rating report.
type JobRatingRow struct {
	JobID       string
	JobTitle    string
	CompanyID   string
	CompanyName string
	Rating      float32
	StartDate   time.Time
	EndDate     time.Time
}
