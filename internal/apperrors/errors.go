package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidTenant indicates that the supplied tenant identifier is not a valid UUID.
// Surfaced before any writes happen.
var ErrInvalidTenant = errors.New("invalid tenant identifier")

// ErrInvalidRecord indicates a malformed import record (missing code or label).
// A single invalid record aborts the whole import.
var ErrInvalidRecord = errors.New("invalid import record")

// ErrSourceNotFound indicates that a referenced input file or stream is missing.
var ErrSourceNotFound = errors.New("import source not found")
