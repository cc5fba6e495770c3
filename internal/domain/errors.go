package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database — or exists but belongs to another
// user. The two cases are deliberately indistinguishable so callers can never
// probe for the existence of someone else's data.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, end date before start date).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrUnauthenticated is returned when a caller identity cannot be resolved
// to a user record. Handlers should map this to HTTP 401.
var ErrUnauthenticated = errors.New("unauthenticated")

// ErrEmailTaken is returned by signup when the email is already registered.
// Handlers should map this to HTTP 409 Conflict.
var ErrEmailTaken = errors.New("email already registered")

// ErrInvalidCredentials is returned by login for both an unknown email and a
// wrong password, so the two cases are indistinguishable to the caller.
// Handlers should map this to HTTP 401.
var ErrInvalidCredentials = errors.New("invalid credentials")
