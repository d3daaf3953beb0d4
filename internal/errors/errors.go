package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// ErrInvalidSymbol is returned when the trigram codec sees a byte outside 0-9a-z
	ErrInvalidSymbol = errors.New("invalid trigram symbol")

	// ErrInvalidOrdinal is returned when a trigram is built from an out-of-range ordinal
	ErrInvalidOrdinal = errors.New("invalid trigram ordinal")

	// ErrIndexNotFound is returned when an index is not found
	ErrIndexNotFound = errors.New("index not found")

	// ErrIndexAlreadyExists is returned when trying to create an index that already exists
	ErrIndexAlreadyExists = errors.New("index already exists")

	// ErrJobNotFound is returned when a job is not found
	ErrJobNotFound = errors.New("job not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrSameName is returned when trying to rename to the same name
	ErrSameName = errors.New("same name provided")
)

// InvalidSymbolError carries the offending byte. Only reachable when a caller
// feeds the codec bytes that did not come out of the normalizer.
type InvalidSymbolError struct {
	Symbol byte
}

func (e *InvalidSymbolError) Error() string {
	return fmt.Sprintf("byte %q (0x%02x) is not in the trigram alphabet", e.Symbol, e.Symbol)
}

func (e *InvalidSymbolError) Is(target error) bool {
	return target == ErrInvalidSymbol
}

// NewInvalidSymbolError creates a new InvalidSymbolError
func NewInvalidSymbolError(symbol byte) *InvalidSymbolError {
	return &InvalidSymbolError{Symbol: symbol}
}

// InvalidOrdinalError carries the out-of-range ordinal.
type InvalidOrdinalError struct {
	Ordinal int
}

func (e *InvalidOrdinalError) Error() string {
	return fmt.Sprintf("trigram ordinal %d is out of range", e.Ordinal)
}

func (e *InvalidOrdinalError) Is(target error) bool {
	return target == ErrInvalidOrdinal
}

// NewInvalidOrdinalError creates a new InvalidOrdinalError
func NewInvalidOrdinalError(ordinal int) *InvalidOrdinalError {
	return &InvalidOrdinalError{Ordinal: ordinal}
}

// IndexNotFoundError represents an index not found error with context
type IndexNotFoundError struct {
	IndexName string
}

func (e *IndexNotFoundError) Error() string {
	return fmt.Sprintf("index named '%s' not found", e.IndexName)
}

func (e *IndexNotFoundError) Is(target error) bool {
	return target == ErrIndexNotFound
}

// NewIndexNotFoundError creates a new IndexNotFoundError
func NewIndexNotFoundError(indexName string) *IndexNotFoundError {
	return &IndexNotFoundError{IndexName: indexName}
}

// IndexAlreadyExistsError represents an index already exists error with context
type IndexAlreadyExistsError struct {
	IndexName string
}

func (e *IndexAlreadyExistsError) Error() string {
	return fmt.Sprintf("index named '%s' already exists", e.IndexName)
}

func (e *IndexAlreadyExistsError) Is(target error) bool {
	return target == ErrIndexAlreadyExists
}

// NewIndexAlreadyExistsError creates a new IndexAlreadyExistsError
func NewIndexAlreadyExistsError(indexName string) *IndexAlreadyExistsError {
	return &IndexAlreadyExistsError{IndexName: indexName}
}

// JobNotFoundError represents a job not found error with context
type JobNotFoundError struct {
	JobID string
}

func (e *JobNotFoundError) Error() string {
	return fmt.Sprintf("job with ID '%s' not found", e.JobID)
}

func (e *JobNotFoundError) Is(target error) bool {
	return target == ErrJobNotFound
}

// NewJobNotFoundError creates a new JobNotFoundError
func NewJobNotFoundError(jobID string) *JobNotFoundError {
	return &JobNotFoundError{JobID: jobID}
}

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// SameNameError represents an error when trying to rename to the same name
type SameNameError struct {
	Name string
}

func (e *SameNameError) Error() string {
	return fmt.Sprintf("new name '%s' is the same as the current name", e.Name)
}

func (e *SameNameError) Is(target error) bool {
	return target == ErrSameName
}

// NewSameNameError creates a new SameNameError
func NewSameNameError(name string) *SameNameError {
	return &SameNameError{Name: name}
}
