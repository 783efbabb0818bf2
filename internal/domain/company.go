package domain

import "time"

// Company hires labourers through jobs. Rating is derived from the company's
// job ratings and written only by the rollup engine.
type Company struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	City      string
	Province  string
	Country   string
	Address   string
	Rating    float32
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
