package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrClassifierUnavailable indicates that the external classification service
// could not be reached or returned a transport-level error. Callers may retry
// the affected messages later via the rescan endpoint.
var ErrClassifierUnavailable = errors.New("classifier unavailable")
