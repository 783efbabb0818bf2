package domain

import "time"

// Rating bounds for job/quality/safety grades.
const (
	RatingMin = 1
	RatingMax = 5
)

// Assignment is one labourer's dated unit of work on one job. The wage paid
// to the labourer and the charge billed to the company are fixed at creation.
type Assignment struct {
	ID         string
	JobID      string
	LabourerID string
	SkillID    string
	Date       time.Time

	// Amounts in cents.
	WageAmount   int64
	ChargeAmount int64

	// Set by the hiring company, overwritable.
	QualityRating *int16
	SafetyRating  *int16

	// Set exactly once by the labourer who performed the assignment; once
	// non-nil it never changes again.
	JobRating *int16

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Graded reports whether the labourer has already rated this assignment.
func (a Assignment) Graded() bool {
	return a.JobRating != nil
}

// ValidRating reports whether v is inside the accepted grading range.
func ValidRating(v int16) bool {
	return v >= RatingMin && v <= RatingMax
}
