package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing title, malformed slug).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrDuplicateKey is returned by repo functions when an insert or update
// collides with a unique constraint (primary key id, or blog post slug).
// Handlers should map this to HTTP 409 Conflict.
var ErrDuplicateKey = errors.New("duplicate key")

// ErrEmptyUpdate is returned when a partial update carries no fields.
// An UPDATE with an empty SET list is invalid SQL, so this is a caller error.
var ErrEmptyUpdate = errors.New("no fields to update")
