package analyzer

import (
	"fmt"

	"github.com/mcncl/metaval/internal/config"
	"github.com/mcncl/metaval/internal/errors"
	"github.com/mcncl/metaval/internal/metadata"
	"github.com/mcncl/metaval/internal/models"
)

// Inference is the narrowest structural metadata type found for a JSON value
type Inference struct {
	// ValueType is the preferred type.
	ValueType metadata.ValueType
	// Alternatives are other types that hold the value just as well, such
	// as MAT2 for a four-component vector.
	Alternatives []metadata.ValueType
	// Fit is the fit of every number in the value, and empty when it has
	// none.
	Fit metadata.ComponentTypeFit
	// Count is the number of elements of an array value.
	Count int
	// Value is the input materialized with ValueType.
	Value metadata.Value
}

// Analyzer infers structural metadata types from JSON values
type Analyzer struct {
	// config holds configuration settings for analysis
	config *config.Config
}

// NewAnalyzer creates a new Analyzer instance.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		config: config.NewConfig(), // Use default config if none provided
	}
}

// NewAnalyzerWithConfig creates a new Analyzer instance with custom configuration.
func NewAnalyzerWithConfig(cfg *config.Config) *Analyzer {
	return &Analyzer{config: cfg}
}

// Analyze infers the type of the root of ir. Numbers take the narrowest
// component type that holds them, preferring unsigned, then signed, then
// floating types.
func (a *Analyzer) Analyze(ir models.IntermediateRepresentation) (Inference, error) {
	var (
		inference Inference
		err       error
	)

	switch v := ir.Root.(type) {
	case nil:
		return Inference{}, errors.NewValueError("null has no metadata type", errors.ErrUnknownType)
	case bool:
		inference.ValueType = metadata.NewValueType(metadata.TypeBoolean, metadata.ComponentNone, false)
	case string:
		inference.ValueType = metadata.NewValueType(metadata.TypeString, metadata.ComponentNone, false)
	case models.JSONObject:
		return Inference{}, errors.NewValueError("objects have no metadata type", errors.ErrUnknownType)
	default:
		if models.IsNumber(v) {
			inference, err = a.analyzeNumber(v)
		} else if arr, ok := models.Array(v); ok {
			inference, err = a.analyzeArray(arr)
		} else {
			err = errors.NewValueError(fmt.Sprintf("unexpected json value type: %T", v), errors.ErrUnknownType)
		}
		if err != nil {
			return Inference{}, err
		}
	}

	inference.Value = metadata.FromJSON(ir.Root, inference.ValueType, nil)
	if inference.Value.IsEmpty() {
		return Inference{}, errors.NewValueError(
			fmt.Sprintf("value cannot be represented as %s", inference.ValueType),
			errors.ErrEmptyValue,
		)
	}
	return inference, nil
}

func (a *Analyzer) analyzeNumber(node models.JSONValue) (Inference, error) {
	fit := metadata.FitOf(node)
	ct := preferredComponentType(fit)
	if ct == metadata.ComponentNone {
		return Inference{}, errors.NewValueError(fmt.Sprintf("number %v has no component type", node), errors.ErrEmptyValue)
	}
	return Inference{
		ValueType: metadata.NewValueType(metadata.TypeScalar, ct, false),
		Fit:       fit,
	}, nil
}

func (a *Analyzer) analyzeArray(arr models.JSONArray) (Inference, error) {
	if len(arr) == 0 {
		return Inference{}, errors.NewValueError("empty arrays have no element type", errors.ErrUnknownType)
	}

	switch {
	case all(arr, models.IsBool):
		return Inference{
			ValueType: metadata.NewValueType(metadata.TypeBoolean, metadata.ComponentNone, true),
			Count:     len(arr),
		}, nil
	case all(arr, models.IsString):
		return Inference{
			ValueType: metadata.NewValueType(metadata.TypeString, metadata.ComponentNone, true),
			Count:     len(arr),
		}, nil
	case all(arr, models.IsNumber):
		return a.analyzeNumbers(arr)
	case all(arr, models.IsArray):
		return a.analyzeNestedArrays(arr)
	default:
		return Inference{}, errors.NewValueError("array elements do not share a metadata type", errors.ErrUnknownType)
	}
}

// analyzeNumbers treats a flat numeric array of two to four numbers as a
// vector, and otherwise as a scalar array. Lengths that match a matrix are
// offered as alternatives.
func (a *Analyzer) analyzeNumbers(arr models.JSONArray) (Inference, error) {
	fit := metadata.FitOfArray(arr)
	ct := preferredComponentType(fit)
	if ct == metadata.ComponentNone {
		return Inference{}, errors.NewValueError("numbers share no component type", errors.ErrEmptyValue)
	}

	scalars := metadata.NewValueType(metadata.TypeScalar, ct, true)
	inference := Inference{ValueType: scalars, Fit: fit, Count: len(arr)}

	if t, ok := vectorType(len(arr)); ok && a.config.Infer.Vectors {
		inference.ValueType = metadata.NewValueType(t, ct, false)
		inference.Count = 0
		inference.Alternatives = append(inference.Alternatives, scalars)
	}
	if t, ok := matrixType(len(arr)); ok && a.config.Infer.Matrices {
		inference.Alternatives = append(inference.Alternatives, metadata.NewValueType(t, ct, false))
	}
	return inference, nil
}

// analyzeNestedArrays handles arrays of equal-length numeric arrays, which
// can only be arrays of vectors or matrices
func (a *Analyzer) analyzeNestedArrays(arr models.JSONArray) (Inference, error) {
	fit := metadata.ComponentTypeFit{}
	n := -1
	for i, element := range arr {
		inner, _ := models.Array(element)
		if n == -1 {
			n = len(inner)
		} else if len(inner) != n {
			return Inference{}, errors.NewValueError(
				fmt.Sprintf("element %d has %d components, expected %d", i, len(inner), n),
				errors.ErrUnknownType,
			)
		}
		if !all(inner, models.IsNumber) {
			return Inference{}, errors.NewValueError(
				fmt.Sprintf("element %d is not an array of numbers", i),
				errors.ErrUnknownType,
			)
		}

		innerFit := metadata.FitOfArray(inner)
		if i == 0 {
			fit = innerFit
		} else {
			fit.Combine(innerFit)
		}
	}

	ct := preferredComponentType(fit)
	if ct == metadata.ComponentNone {
		return Inference{}, errors.NewValueError("numbers share no component type", errors.ErrEmptyValue)
	}

	var candidates []metadata.ValueType
	if t, ok := vectorType(n); ok && a.config.Infer.Vectors {
		candidates = append(candidates, metadata.NewValueType(t, ct, true))
	}
	if t, ok := matrixType(n); ok && a.config.Infer.Matrices {
		candidates = append(candidates, metadata.NewValueType(t, ct, true))
	}
	if len(candidates) == 0 {
		return Inference{}, errors.NewValueError(
			fmt.Sprintf("no vector or matrix type has %d components", n),
			errors.ErrUnknownType,
		)
	}

	return Inference{
		ValueType:    candidates[0],
		Alternatives: candidates[1:],
		Fit:          fit,
		Count:        len(arr),
	}, nil
}

// preferredComponentType picks unsigned, then signed, then floating
func preferredComponentType(fit metadata.ComponentTypeFit) metadata.ComponentType {
	switch {
	case fit.Unsigned != metadata.ComponentNone:
		return fit.Unsigned
	case fit.Signed != metadata.ComponentNone:
		return fit.Signed
	default:
		return fit.Floating
	}
}

func vectorType(n int) (metadata.Type, bool) {
	switch n {
	case 2:
		return metadata.TypeVec2, true
	case 3:
		return metadata.TypeVec3, true
	case 4:
		return metadata.TypeVec4, true
	default:
		return metadata.TypeInvalid, false
	}
}

func matrixType(n int) (metadata.Type, bool) {
	switch n {
	case 4:
		return metadata.TypeMat2, true
	case 9:
		return metadata.TypeMat3, true
	case 16:
		return metadata.TypeMat4, true
	default:
		return metadata.TypeInvalid, false
	}
}

func all(arr models.JSONArray, pred func(models.JSONValue) bool) bool {
	for _, element := range arr {
		if !pred(element) {
			return false
		}
	}
	return true
}
