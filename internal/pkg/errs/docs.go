// Package errs provides the typed errors shared by the marketplace core.
//
// Every error kind follows the same pattern:
//   - a sentinel error variable (e.g. ErrValueIsRequired) for errors.Is checks
//   - a struct carrying the details
//   - constructors with and without a cause
//   - Unwrap returning the sentinel
//
// The HTTP adapter maps the sentinels onto transport status codes:
// validation errors (ErrValueIsRequired, ErrValueIsInvalid, ErrValueIsOutOfRange)
// ErrInvalidTransition and ErrAlreadyAssigned become 400, ErrForbidden 403,
// ErrObjectNotFound 404. Anything else is an internal error.
package errs
