package errors

import (
	stderrs "errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes the ticket store can hit
const (
	pgForeignKeyViolation       = "23503"
	pgInvalidTextRepresentation = "22P02"
	pgStringDataRightTruncation = "22001"
)

// DBErrorCode maps a Postgres error anywhere in err's chain to an ErrorCode
// ok is false when there is no *pgconn.PgError
func DBErrorCode(err error) (code ErrorCode, ok bool) {
	var pgErr *pgconn.PgError
	if !stderrs.As(err, &pgErr) {
		return ErrorCodeUnknown, false
	}
	switch pgErr.Code {
	case pgForeignKeyViolation:
		// comment insert raced a ticket delete
		return ErrorCodeNotFound, true
	case pgInvalidTextRepresentation, pgStringDataRightTruncation:
		return ErrorCodeBadRequest, true
	}
	return ErrorCodeDB, true
}

// FromPostgres wraps err with msg and the mapped code, ErrorCodeDB for anything else
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	if code, ok := DBErrorCode(err); ok {
		return Wrap(err, code, msg)
	}
	return Wrap(err, ErrorCodeDB, msg)
}
