package db

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"

	"github.com/mmbalbas1132/Task-Management-System/tasks/core"
)

// mapWriteErr turns constraint violations into core errors and wraps the rest.
func mapWriteErr(op string, err error) error {
	switch {
	case isForeignKeyViolation(err), isCheckViolation(err):
		return fmt.Errorf("%s: %w", op, core.ErrTaskInvalidArgs)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

// pg helpers

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// sqlite helpers

func sqliteCode(err error) sqlite3.ErrNoExtended {
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode
	}
	return 0
}

func isUniqueViolation(err error) bool {
	return pgCode(err) == "23505" || sqliteCode(err) == sqlite3.ErrConstraintUnique
}

// sqlite reports ON DELETE RESTRICT through its FK trigger code.
func isForeignKeyViolation(err error) bool {
	if pgCode(err) == "23503" {
		return true
	}
	switch sqliteCode(err) {
	case sqlite3.ErrConstraintForeignKey, sqlite3.ErrConstraintTrigger:
		return true
	default:
		return false
	}
}

func isCheckViolation(err error) bool {
	return pgCode(err) == "23514" || sqliteCode(err) == sqlite3.ErrConstraintCheck
}
