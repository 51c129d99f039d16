// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Voronin

package store

import (
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

// uniqueViolation inspects a driver-level error and reports whether it is a
// unique-constraint violation. On a match it returns a description that
// contains the violated column or constraint name, so callers can map the
// violation to the right domain error.
//
// PostgreSQL reports the constraint name (e.g. "users_username_key"); SQLite
// reports the qualified column (e.g. "users.username"). Both contain the
// column name, which is all the mapping below relies on.
func uniqueViolation(err error) (string, bool) {
	if err == nil {
		return "", false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return pgErr.ConstraintName, true
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return sqliteErr.Error(), true
	}

	return "", false
}

// foreignKeyViolation reports whether err is a foreign-key constraint
// violation on either supported driver.
func foreignKeyViolation(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
		return true
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey {
		return true
	}

	return false
}

// userUniqueError maps a unique-constraint violation on the users table to
// [ErrUsernameExists] or [ErrEmailExists]. The database constraints are the
// final arbiter of uniqueness; two concurrent registrations with the same
// username both reach the INSERT and exactly one receives this violation.
func userUniqueError(err error) error {
	detail, ok := uniqueViolation(err)
	if !ok {
		return nil
	}

	switch {
	case strings.Contains(detail, "username"):
		return ErrUsernameExists
	case strings.Contains(detail, "email"):
		return ErrEmailExists
	default:
		return ErrUsernameExists
	}
}
