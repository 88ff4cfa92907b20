package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appError *AppError
		expected string
	}{
		{
			name:     "with wrapped error",
			appError: NewSchemaError("class 'building' not found", ErrUnknownClass),
			expected: "schema: class 'building' not found: unknown class",
		},
		{
			name:     "without wrapped error",
			appError: NewValueError("no fit for INT8", nil),
			expected: "value: no fit for INT8",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.appError.Error())
		})
	}
}

func TestAppError_UnwrapAndIs(t *testing.T) {
	err := fmt.Errorf("describe: %w", NewDocumentError("no metadata", ErrNoStructuralMetadata))

	assert.True(t, errors.Is(err, ErrNoStructuralMetadata))
	assert.True(t, errors.Is(err, &AppError{Type: ErrorTypeDocument}))
	assert.False(t, errors.Is(err, &AppError{Type: ErrorTypeSchema}))
	assert.False(t, NewInputError("x", nil).Is(errors.New("plain")))
}

func TestUserFriendlyError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"input error", NewInputError("failed to read file", nil), "Input error: failed to read file"},
		{"parsing error", NewParsingError("invalid JSON syntax", nil), "JSON parsing error: invalid JSON syntax"},
		{"schema error", NewSchemaError("unknown enum 'color'", ErrUnknownEnum), "Schema error: unknown enum 'color'"},
		{"document error", NewDocumentError("cannot open model.glb", nil), "Document error: cannot open model.glb"},
		{"value error", NewValueError("empty value", ErrEmptyValue), "Value error: empty value"},
		{"output error", NewOutputError("failed to write output", nil), "Output error: failed to write output"},
		{"sentinel empty input", ErrEmptyInput, "Error: The input is empty. Please provide valid JSON data."},
		{"sentinel no metadata", ErrNoStructuralMetadata, "Error: The document does not use EXT_structural_metadata."},
		{"unknown error", errors.New("some unknown error"), "Error: some unknown error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, UserFriendlyError(tt.err))
		})
	}
}
