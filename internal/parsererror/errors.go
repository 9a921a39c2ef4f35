// Package parsererror defines the typed errors returned while turning
// statements into ledger rows.
package parsererror

import (
	"errors"
	"fmt"
)

// ErrNoPages is returned when a document yields no readable page text.
var ErrNoPages = errors.New("document has no readable pages")

// ParseError represents an error during parsing
type ParseError struct {
	Parser string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Parser, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// CategorizationError represents a failure to create or load categories.
type CategorizationError struct {
	Category string
	Err      error
}

func (e *CategorizationError) Error() string {
	return fmt.Sprintf("categorization failed for '%s': %v", e.Category, e.Err)
}

func (e *CategorizationError) Unwrap() error {
	return e.Err
}

// InvalidFormatError represents an error where the input file does not conform
// to the expected format for a specific parser.
type InvalidFormatError struct {
	FilePath             string
	ExpectedFormat       string
	ActualContentSnippet string // Optional: a snippet of the actual content for debugging
	Msg                  string
}

func (e *InvalidFormatError) Error() string {
	if e.ActualContentSnippet != "" {
		return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s. Content snippet: '%s'",
			e.FilePath, e.Msg, e.ExpectedFormat, e.ActualContentSnippet)
	}
	return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s",
		e.FilePath, e.Msg, e.ExpectedFormat)
}

// DataExtractionError represents an error where page text could not be
// read from a document, even if the file itself exists.
type DataExtractionError struct {
	FilePath string
	Page     int // 0 when the failure is not tied to a page
	Reason   string
	Err      error
}

func (e *DataExtractionError) Error() string {
	if e.Page > 0 {
		return fmt.Sprintf("data extraction failed in file '%s' on page %d: %s: %v",
			e.FilePath, e.Page, e.Reason, e.Err)
	}
	return fmt.Sprintf("data extraction failed in file '%s': %s: %v",
		e.FilePath, e.Reason, e.Err)
}

func (e *DataExtractionError) Unwrap() error {
	return e.Err
}

// StorageError wraps a failure reported by the ledger backend.
// Op names the ledger operation, e.g. "insert transaction".
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError wraps err, returning nil when err is nil.
func NewStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

// IsStorageError reports whether err is or wraps a StorageError.
func IsStorageError(err error) bool {
	var storageErr *StorageError
	return errors.As(err, &storageErr)
}
