package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const codeUndefinedTable = "42P01"

// isUndefinedTable indica que el esquema todavía no existe (Load antes de EnsureSchema).
func isUndefinedTable(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeUndefinedTable
}
