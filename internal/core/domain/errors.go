package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Query Errors.

	// ErrParse indicates the query text could not be fully parsed.
	// Returned errors are *ParseError values; match them with errors.Is.
	ErrParse = errors.New("query parse error")

	// ErrConversion indicates the orthography converter failed for a term.
	// The whole transform is abandoned: skipping a scheme would change
	// which spellings count as equivalent.
	ErrConversion = errors.New("conversion failed")

	// ErrUnknownScheme indicates a conversion scheme name is not recognised.
	ErrUnknownScheme = errors.New("unknown conversion scheme")

	// ErrUnknownOrdering indicates a spelling ordering name is not recognised.
	ErrUnknownOrdering = errors.New("unknown spelling ordering")

	// Message Errors.

	// ErrMissingGroup indicates a message filter without a group.
	ErrMissingGroup = errors.New("group id is required")

	// ErrMalformedDictionary indicates a dictionary line could not be read.
	ErrMalformedDictionary = errors.New("malformed dictionary line")
)

// Parse failure reasons.
const (
	ParseReasonEmpty           = "empty query"
	ParseReasonLeadingSpace    = "query starts with whitespace"
	ParseReasonUnexpectedClose = "unexpected ')'"
	ParseReasonEmptyGroup      = "empty group"
	ParseReasonUnclosedGroup   = "unclosed group"
	ParseReasonDanglingNegate  = "'-' is not followed by a term or group"
)

// ParseError reports where and why query parsing stopped.
type ParseError struct {
	// Offset is the byte offset of the failure in the input.
	Offset int

	// Remaining is the unconsumed input starting at Offset.
	Remaining string

	// Reason describes the failure.
	Reason string
}

// Error implements error.
func (e *ParseError) Error() string {
	if e.Remaining == "" {
		return fmt.Sprintf("parse error at offset %d: %s", e.Offset, e.Reason)
	}
	return fmt.Sprintf("parse error at offset %d: %s: unparsed input remains: %s", e.Offset, e.Reason, e.Remaining)
}

// Unwrap lets errors.Is match ErrParse.
func (e *ParseError) Unwrap() error {
	return ErrParse
}
