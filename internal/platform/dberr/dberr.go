// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/inkwell/internal/platform/apperr"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
//
// # Classification
//
//   - pgx.ErrNoRows               → 404 NotFound
//   - SQLSTATE 23505 (unique)     → 409 Conflict, named after the violated field
//   - anything else               → 500 Internal (cause kept for logging only)
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	if field, ok := uniqueViolation(err); ok {
		return apperr.Conflict(field + " already exists")
	}

	return apperr.Internal(err)
}

// IsUniqueViolation reports whether err is a Postgres unique-constraint violation.
func IsUniqueViolation(err error) bool {
	_, ok := uniqueViolation(err)
	return ok
}

// uniqueViolation extracts a client-safe field name from a 23505 error.
//
// Constraint names follow the "<table>_<column>_key" convention, so the
// violated column can be recovered without exposing the raw constraint.
func uniqueViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
		return "", false
	}

	switch {
	case strings.Contains(pgErr.ConstraintName, "username"):
		return "Username", true
	case strings.Contains(pgErr.ConstraintName, "slug"):
		return "Slug", true
	default:
		return "Resource", true
	}
}
