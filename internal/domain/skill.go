package domain

import "time"

// Skill is a billable trade. PayAmount/ChargeAmount (cents) are the default
// wage and company charge applied when assignments are scheduled.
type Skill struct {
	ID           string
	Name         string
	PayAmount    int64
	ChargeAmount int64
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
