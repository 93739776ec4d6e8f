package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/Eli45-23/aichatflows-app-sub001/internal/pkg/apperr"
)

// Postgres error codes this layer cares about.
const (
	pgUndefinedColumn     = "42703"
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// classify maps a database error onto the apperr taxonomy. This is the only
// place failure causes are inspected; call sites switch on kinds.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(op, "record does not exist")
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUndefinedColumn:
			return apperr.SchemaMismatch(op, err)
		case pgUniqueViolation:
			return apperr.Conflict(op, err)
		case pgForeignKeyViolation:
			return &apperr.Error{Kind: apperr.KindValidation, Op: op, Msg: "referenced record does not exist", Err: err}
		}
		return apperr.Remote(op, err)
	}

	// The sqlite driver exposes no structured codes, so the column check has
	// to match the driver message here and nowhere else.
	if strings.Contains(err.Error(), "no such column") {
		return apperr.SchemaMismatch(op, err)
	}

	return apperr.Remote(op, err)
}
