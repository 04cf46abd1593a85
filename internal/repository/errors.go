// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrNotFound indicates the requested row does not exist
// within the caller's restaurant, while ErrConflict signals that an
// operation cannot proceed due to existing dependent records (e.g.
// deleting a table that still has open tickets on it).
package repository

import "errors"

// ErrNotFound is returned when a row does not exist or belongs to a
// different restaurant. Handlers should translate this into an HTTP
// 404 response.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a delete or update cannot be
// performed because of conflicting state, such as attempting to
// delete a dining table that is still occupied. Handlers should
// translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")
