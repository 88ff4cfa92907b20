package errors

import (
	"errors"
	"fmt"
)

// Standard application errors
var (
	ErrEmptyInput           = errors.New("input is empty or contains only whitespace")
	ErrInvalidJSON          = errors.New("invalid JSON format")
	ErrMultipleJSON         = errors.New("multiple JSON values found at the root, only one is allowed")
	ErrFileNotFound         = errors.New("file not found")
	ErrFileEmpty            = errors.New("file is empty")
	ErrNoInput              = errors.New("no input provided: pass a JSON value as an argument or with -i")
	ErrInvalidFilePath      = errors.New("invalid file path")
	ErrUnknownType          = errors.New("unknown metadata type")
	ErrUnknownClass         = errors.New("unknown class")
	ErrUnknownProperty      = errors.New("unknown property")
	ErrUnknownEnum          = errors.New("unknown enum")
	ErrNoStructuralMetadata = errors.New("document has no EXT_structural_metadata extension")
	ErrEmptyValue           = errors.New("value could not be represented with the requested type")
)

// ErrorType categorizes errors
type ErrorType string

const (
	ErrorTypeInput    ErrorType = "input"
	ErrorTypeParsing  ErrorType = "parsing"
	ErrorTypeSchema   ErrorType = "schema"
	ErrorTypeDocument ErrorType = "document"
	ErrorTypeValue    ErrorType = "value"
	ErrorTypeOutput   ErrorType = "output"
	ErrorTypeUnknown  ErrorType = "unknown"
)

// AppError is an application-specific error with context
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *AppError of the same Type.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// NewInputError creates a new error related to input processing
func NewInputError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeInput, Message: message, Err: err}
}

// NewParsingError creates a new error related to JSON parsing
func NewParsingError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeParsing, Message: message, Err: err}
}

// NewSchemaError creates a new error related to structural metadata schemas
func NewSchemaError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeSchema, Message: message, Err: err}
}

// NewDocumentError creates a new error related to loading glTF documents
func NewDocumentError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeDocument, Message: message, Err: err}
}

// NewValueError creates a new error for values that could not be materialized
func NewValueError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeValue, Message: message, Err: err}
}

// NewOutputError creates a new error related to output processing
func NewOutputError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeOutput, Message: message, Err: err}
}

// UserFriendlyError returns a user-friendly error message
func UserFriendlyError(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case ErrorTypeInput:
			return fmt.Sprintf("Input error: %s", appErr.Message)
		case ErrorTypeParsing:
			return fmt.Sprintf("JSON parsing error: %s", appErr.Message)
		case ErrorTypeSchema:
			return fmt.Sprintf("Schema error: %s", appErr.Message)
		case ErrorTypeDocument:
			return fmt.Sprintf("Document error: %s", appErr.Message)
		case ErrorTypeValue:
			return fmt.Sprintf("Value error: %s", appErr.Message)
		case ErrorTypeOutput:
			return fmt.Sprintf("Output error: %s", appErr.Message)
		default:
			return fmt.Sprintf("Error: %s", appErr.Message)
		}
	}

	switch {
	case errors.Is(err, ErrEmptyInput):
		return "Error: The input is empty. Please provide valid JSON data."
	case errors.Is(err, ErrInvalidJSON):
		return "Error: The input contains invalid JSON. Please check your JSON syntax."
	case errors.Is(err, ErrMultipleJSON):
		return "Error: Multiple JSON values found. Please provide a single JSON value."
	case errors.Is(err, ErrFileNotFound):
		return "Error: The specified file could not be found. Please check the file path."
	case errors.Is(err, ErrFileEmpty):
		return "Error: The specified file is empty."
	case errors.Is(err, ErrNoInput):
		return "Error: No input provided. Pass a JSON value as an argument or a file with -i."
	case errors.Is(err, ErrNoStructuralMetadata):
		return "Error: The document does not use EXT_structural_metadata."
	}

	return fmt.Sprintf("Error: %v", err)
}
