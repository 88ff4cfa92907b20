package parser

import (
	"encoding/json"
	stderrors "errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/mcncl/metaval/internal/errors"
	"github.com/mcncl/metaval/internal/models"
)

func TestParse_KeepsNumbersExact(t *testing.T) {
	ir, err := Parse(strings.NewReader(`[1, 18446744073709551615, -9223372036854775808, 3.0, 1e20]`))
	if err != nil {
		t.Fatalf("Parse() error = %v, wantErr nil", err)
	}
	if !ir.RootIsArray {
		t.Errorf("Parse() ir.RootIsArray = false, want true for an array")
	}

	expected := models.JSONArray{
		json.Number("1"),
		json.Number("18446744073709551615"),
		json.Number("-9223372036854775808"),
		json.Number("3.0"),
		json.Number("1e20"),
	}
	if !reflect.DeepEqual(ir.Root, expected) {
		t.Errorf("Parse() root = %#v, want %#v", ir.Root, expected)
	}
}

func TestParse_NestedContainersAreNormalized(t *testing.T) {
	ir, err := Parse(strings.NewReader(`{"offset": [[1, 2], [3, 4]], "name": "x", "flag": true}`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	obj, ok := ir.Root.(models.JSONObject)
	if !ok {
		t.Fatalf("Parse() root is %T, want models.JSONObject", ir.Root)
	}
	outer, ok := obj["offset"].(models.JSONArray)
	if !ok {
		t.Fatalf("offset is %T, want models.JSONArray", obj["offset"])
	}
	if _, ok := outer[0].(models.JSONArray); !ok {
		t.Errorf("offset[0] is %T, want models.JSONArray", outer[0])
	}
}

func TestParse_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"EmptyReader", "", errors.ErrEmptyInput},
		{"Truncated", `{"name": "John Doe", "age": 30`, errors.ErrInvalidJSON},
		{"BadToken", `[1, 2,, 3]`, errors.ErrInvalidJSON},
		{"MultipleValues", `1 2`, errors.ErrMultipleJSON},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tc.input))
			if err == nil {
				t.Fatalf("Parse(%q) err = nil, want %v", tc.input, tc.wantErr)
			}
			if !stderrors.Is(err, tc.wantErr) {
				t.Errorf("Parse(%q) err = %v, want %v", tc.input, err, tc.wantErr)
			}
		})
	}
}

func TestParseString_Whitespace(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t"} {
		_, err := ParseString(input)
		if !stderrors.Is(err, errors.ErrEmptyInput) {
			t.Errorf("ParseString(%q) err = %v, want ErrEmptyInput", input, err)
		}
	}
}

func TestParseRootPrimitives(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected interface{}
	}{
		{"String", `"hello"`, "hello"},
		{"Number", `123.45`, json.Number("123.45")},
		{"True", `true`, true},
		{"Null", `null`, nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v, err := ParseValue(tc.input)
			if err != nil {
				t.Fatalf("ParseValue() error = %v", err)
			}
			if !reflect.DeepEqual(v, tc.expected) {
				t.Errorf("ParseValue() = %#v, want %#v", v, tc.expected)
			}
		})
	}
}

func TestParseRaw(t *testing.T) {
	v, err := ParseRaw(json.RawMessage(`[0.5, 2]`))
	if err != nil {
		t.Fatalf("ParseRaw() error = %v", err)
	}
	expected := models.JSONArray{json.Number("0.5"), json.Number("2")}
	if !reflect.DeepEqual(v, expected) {
		t.Errorf("ParseRaw() = %#v, want %#v", v, expected)
	}

	v, err = ParseRaw(nil)
	if err != nil || v != nil {
		t.Errorf("ParseRaw(nil) = %#v, %v; want nil, nil", v, err)
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "value.json")
	if err := os.WriteFile(path, []byte(`{"scale": [1, 1, 1]}`), 0o644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	ir, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	if ir.RootIsArray {
		t.Errorf("ParseFile() RootIsArray = true, want false")
	}

	empty := filepath.Join(dir, "empty.json")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	if _, err := ParseFile(empty); !stderrors.Is(err, errors.ErrFileEmpty) {
		t.Errorf("ParseFile(empty) err = %v, want ErrFileEmpty", err)
	}

	if _, err := ParseFile(filepath.Join(dir, "missing.json")); !stderrors.Is(err, errors.ErrFileNotFound) {
		t.Errorf("ParseFile(missing) err = %v, want ErrFileNotFound", err)
	}

	if _, err := ParseFile(" "); !stderrors.Is(err, errors.ErrInvalidFilePath) {
		t.Errorf("ParseFile(blank) err = %v, want ErrInvalidFilePath", err)
	}
}
