package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrParse", ErrParse},
		{"ErrConversion", ErrConversion},
		{"ErrUnknownScheme", ErrUnknownScheme},
		{"ErrUnknownOrdering", ErrUnknownOrdering},
		{"ErrMissingGroup", ErrMissingGroup},
		{"ErrMalformedDictionary", ErrMalformedDictionary},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestParseError_Error(t *testing.T) {
	err := &ParseError{Offset: 2, Remaining: ")", Reason: ParseReasonUnexpectedClose}
	assert.Equal(t, "parse error at offset 2: unexpected ')': unparsed input remains: )", err.Error())

	err = &ParseError{Offset: 0, Reason: ParseReasonEmpty}
	assert.Equal(t, "parse error at offset 0: empty query", err.Error())
}

func TestParseError_Is(t *testing.T) {
	var err error = &ParseError{Offset: 1, Remaining: "x", Reason: ParseReasonEmptyGroup}
	wrapped := fmt.Errorf("transform: %w", err)

	assert.True(t, errors.Is(wrapped, ErrParse))
	assert.False(t, errors.Is(wrapped, ErrConversion))

	var pe *ParseError
	assert.True(t, errors.As(wrapped, &pe))
	assert.Equal(t, 1, pe.Offset)
}
