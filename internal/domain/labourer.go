package domain

import "time"

// Labourer is a worker profile. SafetyRating/QualityRating are averages of
// the per-assignment grades given by companies.
type Labourer struct {
	ID            string
	FirstName     string
	LastName      string
	PersonalID    string
	Email         string
	Phone         string
	City          string
	Province      string
	Country       string
	Address       string
	Availability  Weekdays
	SafetyRating  float32
	QualityRating float32
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// FullName joins first and last name for display and notifications.
func (l Labourer) FullName() string {
	return l.FirstName + " " + l.LastName
}
