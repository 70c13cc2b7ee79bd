// Package common defines shared constants, sentinel errors and id helpers used
// across the projtrack stores and their callers. Callers should use errors.Is
// to match the error values.
package common

import "errors"

var (
	// ErrNotFound is returned by mutators when the addressed user, project,
	// module or document does not exist. State is left untouched.
	ErrNotFound = errors.New("not found")

	// Validation errors for values outside the data model's domain.
	ErrInvalidProgress = errors.New("progress must be between 0 and 100")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrInvalidRole     = errors.New("invalid role")

	// ErrUnauthorized is reported by callers that gate mutations behind the
	// admin role.
	ErrUnauthorized = errors.New("unauthorized")
)
