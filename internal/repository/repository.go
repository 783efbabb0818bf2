package repository

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shiftcrew/shiftcrew/internal/store"
)

// Repository aggregates all domain-specific repositories.
type Repository struct {
	Assignments *AssignmentsRepository
	Jobs        *JobsRepository
	Companies   *CompaniesRepository
	Skills      *SkillsRepository
	Labourers   *LabourersRepository
	Invoices    *InvoicesRepository
}

// New constructs a Repository backed by the provided store.
func New(st *store.Store) *Repository {
	return NewWithPool(st.Pool())
}

// NewWithPool allows constructing repositories directly from a pgx pool.
func NewWithPool(pool *pgxpool.Pool) *Repository {
	return &Repository{
		Assignments: &AssignmentsRepository{pool: pool},
		Jobs:        &JobsRepository{pool: pool},
		Companies:   &CompaniesRepository{pool: pool},
		Skills:      &SkillsRepository{pool: pool},
		Labourers:   &LabourersRepository{pool: pool},
		Invoices:    &InvoicesRepository{pool: pool},
	}
}
