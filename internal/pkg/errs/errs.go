// Package errs defines the tagged error taxonomy of the load lifecycle core.
//
// Every failure the core can report is a distinct kind: a sentinel error
// variable paired with a struct type that carries structured detail
// (field name, attempted transition, expected version, and so on). Callers
// discriminate programmatically with errors.Is / errors.As rather than by
// message text; each struct implements Unwrap to its sentinel.
package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValueIsRequired   = errors.New("value is required")
	ErrValueIsInvalid    = errors.New("value is invalid")
	ErrValueIsOutOfRange = errors.New("value is out of range")

	ErrValidation         = errors.New("validation failed")
	ErrInvalidTransition  = errors.New("status transition is not allowed")
	ErrLoadNotFound       = errors.New("load not found")
	ErrLoadDeleted        = errors.New("load is deleted")
	ErrLoadImmutable      = errors.New("load is immutable")
	ErrVersionConflict    = errors.New("version conflict")
	ErrDuplicateKey       = errors.New("duplicate key")
	ErrDuplicateReference = errors.New("reference number generation exhausted")
	ErrRepository         = errors.New("repository failure")
)

// sanitize keeps error messages single-line.
func sanitize(s string) string {
	return strings.ReplaceAll(s, "\n", " ")
}

// ValueIsRequiredError reports a missing required value.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, sanitize(e.ParamName), e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, sanitize(e.ParamName))
}

func (e *ValueIsRequiredError) Unwrap() error { return ErrValueIsRequired }

// ValueIsInvalidError reports a malformed value.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, sanitize(e.ParamName), e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, sanitize(e.ParamName))
}

func (e *ValueIsInvalidError) Unwrap() error { return ErrValueIsInvalid }

// ValueIsOutOfRangeError reports a value outside its permitted bounds.
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func (e *ValueIsOutOfRangeError) Error() string {
	return fmt.Sprintf("%s: %s is %v, min value is %v, max value is %v",
		ErrValueIsOutOfRange, sanitize(e.ParamName), e.Value, e.Min, e.Max)
}

func (e *ValueIsOutOfRangeError) Unwrap() error { return ErrValueIsOutOfRange }

// ValidationError reports an input field that failed a business invariant.
// Field names the offending field in the caller's vocabulary
// (e.g. "pickup_datetime", "hazmat_class").
type ValidationError struct {
	Field string
	Cause error
}

func NewValidationError(field string, cause error) *ValidationError {
	return &ValidationError{Field: field, Cause: cause}
}

func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValidation, sanitize(e.Field), e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValidation, sanitize(e.Field))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// InvalidTransitionError reports a status change that the transition graph
// does not permit, naming the attempted from -> to pair.
type InvalidTransitionError struct {
	From string
	To   string
}

func NewInvalidTransitionError(from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error { return ErrInvalidTransition }

// LoadNotFoundError reports that no load exists for the given identifier.
type LoadNotFoundError struct {
	ID string
}

func NewLoadNotFoundError(id string) *LoadNotFoundError {
	return &LoadNotFoundError{ID: id}
}

func (e *LoadNotFoundError) Error() string {
	return fmt.Sprintf("%s: %s", ErrLoadNotFound, e.ID)
}

func (e *LoadNotFoundError) Unwrap() error { return ErrLoadNotFound }

// LoadDeletedError reports an attempt to mutate a soft-deleted load.
type LoadDeletedError struct {
	ID string
}

func NewLoadDeletedError(id string) *LoadDeletedError {
	return &LoadDeletedError{ID: id}
}

func (e *LoadDeletedError) Error() string {
	return fmt.Sprintf("%s: %s", ErrLoadDeleted, e.ID)
}

func (e *LoadDeletedError) Unwrap() error { return ErrLoadDeleted }

// LoadImmutableError reports an attempt to mutate a load that is fully
// frozen by its lifecycle status.
type LoadImmutableError struct {
	ID     string
	Status string
}

func NewLoadImmutableError(id, status string) *LoadImmutableError {
	return &LoadImmutableError{ID: id, Status: status}
}

func (e *LoadImmutableError) Error() string {
	return fmt.Sprintf("%s: %s (status: %s)", ErrLoadImmutable, e.ID, e.Status)
}

func (e *LoadImmutableError) Unwrap() error { return ErrLoadImmutable }

// VersionConflictError reports an optimistic-lock failure: the conditional
// write matched zero rows, because the load is gone or another writer
// already advanced the version past ExpectedVersion.
type VersionConflictError struct {
	ID              string
	ExpectedVersion int
}

func NewVersionConflictError(id string, expectedVersion int) *VersionConflictError {
	return &VersionConflictError{ID: id, ExpectedVersion: expectedVersion}
}

func (e *VersionConflictError) Error() string {
	return fmt.Sprintf("%s: %s (expected version: %d)", ErrVersionConflict, e.ID, e.ExpectedVersion)
}

func (e *VersionConflictError) Unwrap() error { return ErrVersionConflict }

// DuplicateKeyError reports a unique-constraint violation at the storage
// boundary.
type DuplicateKeyError struct {
	Field string
	Value string
}

func NewDuplicateKeyError(field, value string) *DuplicateKeyError {
	return &DuplicateKeyError{Field: field, Value: value}
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("%s: %s = %s", ErrDuplicateKey, sanitize(e.Field), sanitize(e.Value))
}

func (e *DuplicateKeyError) Unwrap() error { return ErrDuplicateKey }

// DuplicateReferenceError reports that reference number generation ran out
// of retry attempts. The whole creation is safe to retry.
type DuplicateReferenceError struct {
	Reference string
	Attempts  int
}

func NewDuplicateReferenceError(reference string, attempts int) *DuplicateReferenceError {
	return &DuplicateReferenceError{Reference: reference, Attempts: attempts}
}

func (e *DuplicateReferenceError) Error() string {
	return fmt.Sprintf("%s: %s after %d attempts", ErrDuplicateReference, e.Reference, e.Attempts)
}

func (e *DuplicateReferenceError) Unwrap() error { return ErrDuplicateReference }

// RepositoryError wraps an underlying storage failure that has no more
// specific kind. The cause is preserved, never swallowed.
type RepositoryError struct {
	Op    string
	Cause error
}

func NewRepositoryError(op string, cause error) *RepositoryError {
	return &RepositoryError{Op: op, Cause: cause}
}

func (e *RepositoryError) Error() string {
	return fmt.Sprintf("%s: %s (cause: %s)", ErrRepository, sanitize(e.Op), e.Cause)
}

func (e *RepositoryError) Unwrap() error { return ErrRepository }
