// Package repository persists users and notes. Sentinel errors defined
// here let handlers distinguish failure cases without inspecting driver
// errors. ErrDuplicateUser maps to HTTP 409, ErrNotFound to 404 or an
// empty result depending on the call site; anything else is a storage
// failure and surfaces as a generic 500.
package repository

import "errors"

// ErrDuplicateUser is returned when registration hits the username
// uniqueness constraint. Duplicates are detected by the constraint
// itself, never by a racy pre-check.
var ErrDuplicateUser = errors.New("username already exists")

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")
