// Package repository contains data access logic separated from HTTP handlers.
// The sentinel values below let handlers distinguish failure scenarios
// without inspecting driver-specific error strings.
package repository

import "errors"

// ErrFilmNotFound is returned when an update or delete matched no row.
// Handlers should translate this into an HTTP 404 response.
var ErrFilmNotFound = errors.New("film not found")

// ErrInvalidFilter is returned when a listing filter cannot be parsed,
// e.g. a non-numeric noteMin.  Handlers should translate this into an
// HTTP 400 response.
var ErrInvalidFilter = errors.New("invalid filter")
