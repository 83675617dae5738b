package repository

import (
	"errors"

	"todo_api/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
)

func readError(err error) error {
	return domain.ReadFailure("unexpected read error", err)
}

func writeError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return domain.WriteFailure("unique constraint violation", err)
		case "23503":
			return domain.WriteFailure("foreign key violation", err)
		case "23502", "23514":
			return domain.WriteFailure("constraint violation", err)
		}
	}
	return domain.WriteFailure("unexpected write error", err)
}
