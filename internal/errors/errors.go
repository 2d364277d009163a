// Package errors defines the stable error taxonomy for snapdiff.
// Every failure mode of the diff engine maps to exactly one ErrorCode;
// all of them are immediately fatal and none are caught or downgraded
// inside the core. Callers match on the code, not the message, although
// the messages themselves are stable and part of the contract.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// NullInput indicates one of the two top-level documents is absent
	NullInput ErrorCode = "NULL_INPUT"
	// IdentifierMismatch indicates top-level ids differ between before/after
	IdentifierMismatch ErrorCode = "IDENTIFIER_MISMATCH"
	// MissingMeta indicates a metadata block is absent on one side
	MissingMeta ErrorCode = "MISSING_META"
	// IncompleteMeta indicates a metadata block lacks a required key
	IncompleteMeta ErrorCode = "INCOMPLETE_META"
	// MissingCandidates indicates a candidates list is absent on one side
	MissingCandidates ErrorCode = "MISSING_CANDIDATES"
	// TimestampParse indicates a time-like metadata value is not an
	// ISO-8601 offset date-time
	TimestampParse ErrorCode = "TIMESTAMP_PARSE"
	// InvalidDocument indicates a document node has the wrong shape
	// (e.g. top level is not an object, a candidate is not an object)
	InvalidDocument ErrorCode = "INVALID_DOCUMENT"
)

// DiffError represents a snapdiff error with a stable code and message
type DiffError struct {
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	cause   error       // Underlying error (not exported to JSON)
}

// New creates a new DiffError
func New(code ErrorCode, message string, cause error) *DiffError {
	return &DiffError{
		Code:    code,
		Message: message,
		cause:   cause,
	}
}

// Error implements the error interface
func (e *DiffError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *DiffError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *DiffError) WithDetails(details interface{}) *DiffError {
	e.Details = details
	return e
}

// CodeOf extracts the ErrorCode from err, or empty string if err is not
// a DiffError.
func CodeOf(err error) ErrorCode {
	var de *DiffError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// NewNullInput reports an absent top-level document. Side is "first" or
// "second"; the message wording is stable.
func NewNullInput(side string) *DiffError {
	return New(NullInput, side+" input json object must not be null", nil)
}

// NewIdentifierMismatch reports differing top-level identifiers.
func NewIdentifierMismatch() *DiffError {
	return New(IdentifierMismatch, "json objects have different identifiers", nil)
}

// NewMissingMeta reports an absent metadata block.
func NewMissingMeta() *DiffError {
	return New(MissingMeta, "meta field is missed", nil)
}

// NewIncompleteMeta reports a metadata block lacking a required key.
func NewIncompleteMeta() *DiffError {
	return New(IncompleteMeta, "meta data has missed fields", nil)
}

// NewMissingCandidates reports an absent candidates list.
func NewMissingCandidates() *DiffError {
	return New(MissingCandidates, "candidates field is missed", nil)
}

// NewTimestampParse reports a time-like value that is not ISO-8601
// offset date-time parseable.
func NewTimestampParse(value string, cause error) *DiffError {
	return New(TimestampParse, fmt.Sprintf("cannot parse %q as ISO-8601 offset date-time", value), cause)
}

// NewInvalidDocument reports a document node with the wrong shape.
func NewInvalidDocument(message string) *DiffError {
	return New(InvalidDocument, message, nil)
}
