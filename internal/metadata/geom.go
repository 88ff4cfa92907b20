package metadata

import "strings"

// IntPoint is a 2D integer point.
type IntPoint struct {
	X, Y int32
}

// Vector2 is a 2D double vector.
type Vector2 struct {
	X, Y float64
}

// IntVector is a 3D integer vector.
type IntVector struct {
	X, Y, Z int32
}

// Vector3f is a 3D single-precision vector.
type Vector3f struct {
	X, Y, Z float32
}

// Vector3 is a 3D double vector.
type Vector3 struct {
	X, Y, Z float64
}

// Vector4 is a 4D double vector.
type Vector4 struct {
	X, Y, Z, W float64
}

// Matrix is a 4x4 double matrix indexed [column][row].
type Matrix [4][4]float64

// Identity is the 4x4 identity matrix.
var Identity = Matrix{
	{1, 0, 0, 0},
	{0, 1, 0, 0},
	{0, 0, 1, 0},
	{0, 0, 0, 1},
}

func (p IntPoint) String() string  { return formatLabeled([]int32{p.X, p.Y}) }
func (v Vector2) String() string   { return formatLabeled([]float64{v.X, v.Y}) }
func (v IntVector) String() string { return formatLabeled([]int32{v.X, v.Y, v.Z}) }
func (v Vector3f) String() string  { return formatLabeled([]float32{v.X, v.Y, v.Z}) }
func (v Vector3) String() string   { return formatLabeled([]float64{v.X, v.Y, v.Z}) }
func (v Vector4) String() string   { return formatLabeled([]float64{v.X, v.Y, v.Z, v.W}) }

// String renders the matrix row by row, the same form a MAT4 value's
// string accessor produces.
func (m Matrix) String() string {
	rows := make([]string, 4)
	for row := 0; row < 4; row++ {
		cols := make([]string, 4)
		for col := 0; col < 4; col++ {
			cols[col] = formatNumber(m[col][row])
		}
		rows[row] = "[" + strings.Join(cols, " ") + "]"
	}
	return strings.Join(rows, " ")
}
