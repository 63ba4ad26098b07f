package service

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// Import
	ErrDocumentFormat   = errors.New("malformed import document")
	ErrInvalidSkip      = errors.New("skip must be a non-negative integer")
	ErrInvalidTableName = errors.New("invalid table name")
	ErrSourceNotFound   = errors.New("import source not found")

	// Auth
	ErrValidation         = errors.New("validation failed")
	ErrDuplicateUser      = errors.New("User already exists!")
	ErrInvalidCredentials = errors.New("Incorrect email or password")
	ErrUnauthenticated    = errors.New("authentication required")
)

// QueryError is a failed read in the housing aggregator.
// No partial result accompanies it.
type QueryError struct {
	Op  string
	Err error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query %s: %v", e.Op, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

func queryError(op string, err error) error {
	return errors.WithStack(&QueryError{Op: op, Err: err})
}

// FieldErrors carries per-field validation messages and matches ErrValidation
type FieldErrors struct {
	Fields []string
}

func (e *FieldErrors) Error() string {
	return fmt.Sprintf("%s: %v", ErrValidation.Error(), e.Fields)
}

func (e *FieldErrors) Is(target error) bool {
	return target == ErrValidation
}
