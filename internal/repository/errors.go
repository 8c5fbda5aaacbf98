package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrStayConflict means the requested stay overlaps an active booking.
	ErrStayConflict = errors.New("stay overlaps an existing booking")
	// ErrStaleState means a conditional status update matched no row.
	ErrStaleState = errors.New("booking status changed concurrently")
)

const pgExclusionViolation = "23P01"

func isExclusionViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgExclusionViolation
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
