package metadata

import (
	"strings"
	"unicode"
)

// ParseIntPoint parses "X=1 Y=2".
func ParseIntPoint(s string) (IntPoint, bool) {
	c, ok := parseLabeled[int32](s, 2)
	return IntPoint{c[0], c[1]}, ok
}

// ParseVector2 parses "X=1 Y=2".
func ParseVector2(s string) (Vector2, bool) {
	c, ok := parseLabeled[float64](s, 2)
	return Vector2{c[0], c[1]}, ok
}

// ParseIntVector parses "X=1 Y=2 Z=3".
func ParseIntVector(s string) (IntVector, bool) {
	c, ok := parseLabeled[int32](s, 3)
	return IntVector{c[0], c[1], c[2]}, ok
}

// ParseVector3f parses "X=1 Y=2 Z=3".
func ParseVector3f(s string) (Vector3f, bool) {
	c, ok := parseLabeled[float32](s, 3)
	return Vector3f{c[0], c[1], c[2]}, ok
}

// ParseVector3 parses "X=1 Y=2 Z=3".
func ParseVector3(s string) (Vector3, bool) {
	c, ok := parseLabeled[float64](s, 3)
	return Vector3{c[0], c[1], c[2]}, ok
}

// ParseVector4 parses "X=1 Y=2 Z=3 W=4".
func ParseVector4(s string) (Vector4, bool) {
	c, ok := parseLabeled[float64](s, 4)
	return Vector4{c[0], c[1], c[2], c[3]}, ok
}

// parseLabeled reads the first n of the X, Y, Z and W components. Labels
// are case-insensitive, may come in any order and may be separated by
// spaces or commas; surrounding parentheses are ignored. Labels beyond n
// are allowed and skipped, so a 3D string still parses as a 2D point.
func parseLabeled[T numeric](s string, n int) ([4]T, bool) {
	var out [4]T
	var seen [4]bool

	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "(")
	s = strings.TrimSuffix(s, ")")
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == ','
	})
	if len(fields) == 0 {
		return out, false
	}

	for _, field := range fields {
		label, text, ok := strings.Cut(field, "=")
		if !ok || len(label) != 1 {
			return [4]T{}, false
		}
		i := strings.IndexByte(componentLabels, byte(unicode.ToUpper(rune(label[0]))))
		if i < 0 || seen[i] {
			return [4]T{}, false
		}
		seen[i] = true
		if i >= n {
			continue
		}
		c, ok := parseScalar[T](text)
		if !ok {
			return [4]T{}, false
		}
		out[i] = c
	}

	for i := 0; i < n; i++ {
		if !seen[i] {
			return [4]T{}, false
		}
	}
	return out, true
}
