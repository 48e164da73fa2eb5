// Copyright (c) 2026 Heritage Iron Restorations LLC <shop@heritageiron.example>
// All rights reserved. See LICENSE for details.

package store

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDuplicateSlug is returned when an insert or update violates the
// unique index on posts.slug. The draft generator relies on this to drive
// its suffix-retry loop instead of a racy existence check.
var ErrDuplicateSlug = errors.New("store: slug already exists")

// uniqueViolation is the Postgres error code for unique constraint violations.
const uniqueViolation = "23505"

// isUniqueViolation reports whether err is a Postgres unique constraint error.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
