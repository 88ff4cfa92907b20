package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseVector3(t *testing.T) {
	tests := []struct {
		in     string
		want   Vector3
		wantOK bool
	}{
		{"X=1 Y=2 Z=3", Vector3{1, 2, 3}, true},
		{"x=1.5, y=-2, z=3e2", Vector3{1.5, -2, 300}, true},
		{"(Z=3 X=1 Y=2)", Vector3{1, 2, 3}, true},
		{"X=1 Y=2 Z=3 W=4", Vector3{1, 2, 3}, true},
		{"X=1 Y=2", Vector3{}, false},
		{"X=1 X=2 Y=2 Z=3", Vector3{}, false},
		{"X=1 Y=2 Q=3", Vector3{}, false},
		{"X=a Y=2 Z=3", Vector3{}, false},
		{"", Vector3{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseVector3(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseIntegerPoints(t *testing.T) {
	p, ok := ParseIntPoint("X=3 Y=-4")
	assert.True(t, ok)
	assert.Equal(t, IntPoint{3, -4}, p)

	_, ok = ParseIntPoint("X=3.5 Y=1")
	assert.False(t, ok)

	_, ok = ParseIntVector("X=1 Y=2 Z=3000000000")
	assert.False(t, ok)
}

func TestParse_RoundTripsString(t *testing.T) {
	v4 := Vector4{1, -2.5, 3, 0.125}
	got, ok := ParseVector4(v4.String())
	assert.True(t, ok)
	assert.Equal(t, v4, got)

	v3f := Vector3f{0.1, 2, 3}
	gotf, ok := ParseVector3f(v3f.String())
	assert.True(t, ok)
	assert.Equal(t, v3f, gotf)

	v2 := Vector2{-1, 1}
	got2, ok := ParseVector2(v2.String())
	assert.True(t, ok)
	assert.Equal(t, v2, got2)
}
