package parser

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mcncl/metaval/internal/errors"
	"github.com/mcncl/metaval/internal/models"
)

// Parse decodes exactly one JSON value from reader. Numbers are kept as
// json.Number so that integer literals beyond 2^53 survive intact.
func Parse(reader io.Reader) (models.IntermediateRepresentation, error) {
	decoder := json.NewDecoder(reader)
	decoder.UseNumber()

	var rootValue models.JSONValue
	if err := decoder.Decode(&rootValue); err != nil {
		return models.IntermediateRepresentation{}, decodeError(err)
	}

	if decoder.More() {
		var trailingValue interface{}
		if err := decoder.Decode(&trailingValue); err == nil {
			return models.IntermediateRepresentation{}, errors.NewParsingError("multiple JSON values found at the root", errors.ErrMultipleJSON)
		} else if !stderrors.Is(err, io.EOF) {
			return models.IntermediateRepresentation{}, errors.NewParsingError("invalid trailing data after first JSON value", err)
		}
	}

	rootValue = Normalize(rootValue)
	_, isArray := rootValue.(models.JSONArray)
	return models.IntermediateRepresentation{
		Root:        rootValue,
		RootIsArray: isArray,
	}, nil
}

func decodeError(err error) error {
	if stderrors.Is(err, io.EOF) {
		return errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
	}
	var syntaxError *json.SyntaxError
	if stderrors.As(err, &syntaxError) {
		return errors.NewParsingError(
			fmt.Sprintf("JSON syntax error at offset %d", syntaxError.Offset),
			errors.ErrInvalidJSON,
		)
	}
	if stderrors.Is(err, io.ErrUnexpectedEOF) {
		return errors.NewParsingError("JSON syntax error: unexpected EOF", errors.ErrInvalidJSON)
	}
	return errors.NewParsingError("failed to decode JSON", err)
}

// Normalize converts the generic containers produced by encoding/json into
// models.JSONObject and models.JSONArray, recursively.
func Normalize(val models.JSONValue) models.JSONValue {
	switch v := val.(type) {
	case map[string]interface{}:
		obj := make(models.JSONObject, len(v))
		for key, value := range v {
			obj[key] = Normalize(value)
		}
		return obj
	case models.JSONObject:
		for key, value := range v {
			v[key] = Normalize(value)
		}
		return v
	case []interface{}:
		arr := make(models.JSONArray, len(v))
		for i, value := range v {
			arr[i] = Normalize(value)
		}
		return arr
	case models.JSONArray:
		for i, value := range v {
			v[i] = Normalize(value)
		}
		return v
	default:
		return v
	}
}

// ParseString parses JSON from a string
func ParseString(jsonString string) (models.IntermediateRepresentation, error) {
	if strings.TrimSpace(jsonString) == "" {
		return models.IntermediateRepresentation{}, errors.NewInputError("input string is empty", errors.ErrEmptyInput)
	}
	return Parse(strings.NewReader(jsonString))
}

// ParseValue is ParseString for callers that only need the root value.
func ParseValue(jsonString string) (models.JSONValue, error) {
	ir, err := ParseString(jsonString)
	if err != nil {
		return nil, err
	}
	return ir.Root, nil
}

// ParseRaw decodes an embedded raw JSON fragment, such as a field that was
// captured as json.RawMessage while decoding a larger document.
func ParseRaw(raw json.RawMessage) (models.JSONValue, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	ir, err := Parse(strings.NewReader(string(raw)))
	if err != nil {
		return nil, err
	}
	return ir.Root, nil
}

// ParseFile parses JSON from a file path
func ParseFile(filePath string) (models.IntermediateRepresentation, error) {
	if strings.TrimSpace(filePath) == "" {
		return models.IntermediateRepresentation{}, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return models.IntermediateRepresentation{}, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return models.IntermediateRepresentation{}, errors.NewInputError(
			fmt.Sprintf("failed to open file '%s'", filePath),
			err,
		)
	}
	defer func() { _ = file.Close() }()

	stat, err := file.Stat()
	if err != nil {
		return models.IntermediateRepresentation{}, errors.NewInputError(
			fmt.Sprintf("failed to get file stats for '%s'", filePath),
			err,
		)
	}
	if stat.Size() == 0 {
		return models.IntermediateRepresentation{}, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}

	return Parse(file)
}
