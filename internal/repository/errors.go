package repository

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrBillNotFound = errors.New("bill not found")
	ErrBillExists   = errors.New("bill already submitted")
	ErrDuplicate    = errors.New("duplicate record")
)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
