package domain

import "time"

// InvoiceSummary is one per-company row of the invoice report over a date
// range. Amounts are in cents; Margin is ChargeTotal minus WageTotal.
type InvoiceSummary struct {
	CompanyID       string
	CompanyName     string
	AssignmentCount int64
	WageTotal       int64
	ChargeTotal     int64
	Margin          int64
}

// InvoiceLine is one per-assignment detail row underlying an invoice summary.
type InvoiceLine struct {
	AssignmentID string
	JobTitle     string
	SkillName    string
	LabourerName string
	Date         time.Time
	WageAmount   int64
	ChargeAmount int64
}
