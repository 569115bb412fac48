package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// ErrOverlap means an occupying booking already covers part of the requested stay.
	ErrOverlap = errors.New("room already booked for the requested dates")
	// ErrStaleStatus means the row changed status since it was read.
	ErrStaleStatus = errors.New("booking status changed concurrently")
)

const OverlapConstraintName = "bookings_no_overlap"

const (
	pgUniqueViolation    = "23505"
	pgExclusionViolation = "23P01"
)

func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique constraint") || strings.Contains(msg, "unique failed")
}

// mapOverlapError turns the PostgreSQL exclusion-constraint violation into ErrOverlap.
func mapOverlapError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgExclusionViolation {
		return ErrOverlap
	}
	return err
}

// IsDuplicate reports a unique constraint violation.
func IsDuplicate(err error) bool {
	return isUniqueConstraintError(err)
}
