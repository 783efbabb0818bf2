package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/shiftcrew/shiftcrew/internal/domain"
)

// Postgres SQLSTATE codes the repositories care about.
const (
	pgFKViolation     = "23503"
	pgUniqueViolation = "23505"
	pgCheckViolation  = "23514"
	pgSerialization   = "40001"
	pgDeadlock        = "40P01"
)

// mapConstraintErr converts referential/check violations into
// domain.ErrValidation so callers see a domain error instead of raw SQLSTATE.
func mapConstraintErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgFKViolation:
			return fmt.Errorf("%w: referenced entity does not exist", domain.ErrValidation)
		case pgUniqueViolation:
			return fmt.Errorf("%w: duplicate value", domain.ErrValidation)
		case pgCheckViolation:
			return fmt.Errorf("%w: value out of range", domain.ErrValidation)
		}
	}
	return err
}

// IsRetryableTxErr reports whether a transaction failed due to a
// serialization conflict or deadlock and may be retried.
func IsRetryableTxErr(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgSerialization || pgErr.Code == pgDeadlock
	}
	return false
}
