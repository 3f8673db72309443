package db

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"laudos-api/internal/application/apperr"
)

const pgUniqueViolation = "23505"

// UniqueViolation reports the column behind a unique constraint failure for
// either dialect. Index names follow the Table_column_key convention.
func UniqueViolation(err error) (string, bool) {
	if err == nil {
		return "", false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code != pgUniqueViolation {
			return "", false
		}
		name := strings.TrimSuffix(pgErr.ConstraintName, "_key")
		if i := strings.LastIndex(name, "_"); i >= 0 {
			name = name[i+1:]
		}
		return name, true
	}

	const marker = "UNIQUE constraint failed: "
	msg := err.Error()
	i := strings.Index(msg, marker)
	if i < 0 {
		return "", false
	}
	col := msg[i+len(marker):]
	if j := strings.IndexAny(col, " ,("); j >= 0 {
		col = col[:j]
	}
	if k := strings.LastIndex(col, "."); k >= 0 {
		col = col[k+1:]
	}
	return col, true
}

// Conflict translates unique violations on user-facing columns into their
// apperr sentinel and returns any other error unchanged.
func Conflict(err error) error {
	col, ok := UniqueViolation(err)
	if !ok {
		return err
	}
	switch col {
	case "email":
		return apperr.ErrEmailTaken
	case "crm":
		return apperr.ErrCRMTaken
	case "cpf":
		return apperr.ErrCPFTaken
	}
	return err
}
