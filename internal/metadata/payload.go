package metadata

// Shape identifies which payload variant a Value holds.
type Shape int

const (
	ShapeEmpty Shape = iota
	ShapeBool
	ShapeString
	ShapeInt
	ShapeUint
	ShapeFloat
	ShapeIntVector
	ShapeUintVector
	ShapeFloatVector
	ShapeIntMatrix
	ShapeUintMatrix
	ShapeFloatMatrix
	ShapeArray
	shapeCount
)

func _() {
	// An "invalid array index" compiler error signifies that the Shape
	// constants have changed. Every switch over payload types in convert.go
	// and array.go must handle the new set before updating this check.
	var x [1]struct{}
	_ = x[shapeCount-13]
}

var shapeNames = [...]string{
	ShapeEmpty:       "empty",
	ShapeBool:        "bool",
	ShapeString:      "string",
	ShapeInt:         "int",
	ShapeUint:        "uint",
	ShapeFloat:       "float",
	ShapeIntVector:   "int vector",
	ShapeUintVector:  "uint vector",
	ShapeFloatVector: "float vector",
	ShapeIntMatrix:   "int matrix",
	ShapeUintMatrix:  "uint matrix",
	ShapeFloatMatrix: "float matrix",
	ShapeArray:       "array",
}

func (s Shape) String() string {
	if s >= 0 && s < shapeCount {
		return shapeNames[s]
	}
	return "unknown"
}

// storage is the set of native types numeric components are held in. The
// declared component width lives in the ValueType; storage is always the
// widest type of the matching axis.
type storage interface {
	int64 | uint64 | float64
}

// payload is the closed set of value variants. Only the types in this file
// implement it.
type payload interface {
	shape() Shape
}

type boolValue bool

type stringValue string

type scalarValue[T storage] struct {
	v T
}

// vecValue holds n components, n in [2, 4].
type vecValue[T storage] struct {
	n int
	c [4]T
}

// matValue holds an n×n matrix, n in [2, 4], in column-major order:
// component (col, row) is c[col*n+row].
type matValue[T storage] struct {
	n int
	c [16]T
}

type arrayValue struct {
	arr PropertyArray
}

func (boolValue) shape() Shape   { return ShapeBool }
func (stringValue) shape() Shape { return ShapeString }
func (arrayValue) shape() Shape  { return ShapeArray }

func (scalarValue[T]) shape() Shape {
	return shapeOf[T](ShapeInt, ShapeUint, ShapeFloat)
}

func (vecValue[T]) shape() Shape {
	return shapeOf[T](ShapeIntVector, ShapeUintVector, ShapeFloatVector)
}

func (matValue[T]) shape() Shape {
	return shapeOf[T](ShapeIntMatrix, ShapeUintMatrix, ShapeFloatMatrix)
}

func shapeOf[T storage](ifInt, ifUint, ifFloat Shape) Shape {
	var zero T
	switch any(zero).(type) {
	case int64:
		return ifInt
	case uint64:
		return ifUint
	default:
		return ifFloat
	}
}

// at returns component (col, row) of the matrix.
func (m matValue[T]) at(col, row int) T {
	return m.c[col*m.n+row]
}

func newVec[T storage](comps []T) (vecValue[T], bool) {
	if len(comps) < 2 || len(comps) > 4 {
		return vecValue[T]{}, false
	}
	v := vecValue[T]{n: len(comps)}
	copy(v.c[:], comps)
	return v, true
}

func newMat[T storage](comps []T) (matValue[T], bool) {
	var n int
	switch len(comps) {
	case 4:
		n = 2
	case 9:
		n = 3
	case 16:
		n = 4
	default:
		return matValue[T]{}, false
	}
	m := matValue[T]{n: n}
	copy(m.c[:], comps)
	return m, true
}
