package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// EsNoEncontrado reports whether err is gorm's record-not-found.
func EsNoEncontrado(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// EsViolacionUnica reports whether err carries SQLSTATE 23505.
func EsViolacionUnica(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
