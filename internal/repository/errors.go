// Package repository implements the data-access layer over the relational
// store.  Each entity gets its own repository with id- and key-based
// lookups.  The sentinel errors below are shared across repositories so
// handlers can translate failure scenarios into HTTP statuses without
// inspecting driver-specific errors.
package repository

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when a lookup matches no row.  Handlers should
// translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned when inserting or updating a user would
// violate the unique email constraint.  Handlers should translate this
// into an HTTP 409 response.
var ErrEmailExists = errors.New("email already exists")

// ErrInUse is returned when a delete cannot proceed because other rows
// still reference the target (e.g. deleting a destination that flights
// point at).  Handlers should translate this into an HTTP 409 response.
var ErrInUse = errors.New("referenced by other records")

// ErrInvalidCredentials is returned by credential verification when the
// email is unknown or the password does not match.
var ErrInvalidCredentials = errors.New("invalid credentials")

// isDuplicate reports whether err is a unique-constraint violation.
// MySQL surfaces error 1062; SQLite (used in tests) reports a UNIQUE
// constraint failure by name.
func isDuplicate(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "1062") || strings.Contains(msg, "unique constraint")
}

// isFKViolation reports whether err is a foreign-key constraint violation.
// MySQL surfaces errors 1451/1452; SQLite reports the constraint by name.
func isFKViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "1451") || strings.Contains(msg, "1452") ||
		strings.Contains(msg, "foreign key constraint")
}
