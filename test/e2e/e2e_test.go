package e2e_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// metaval runs the CLI with args and returns its combined output
func metaval(t testing.TB, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command("go", append([]string{"run", "../../main.go"}, args...)...)
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}
	output, err := cmd.CombinedOutput()
	return string(output), err
}

// TestEndToEnd_Describe describes a glTF document with feature ID sets
func TestEndToEnd_Describe(t *testing.T) {
	output, err := metaval(t, "", "--no-color", "describe", "../../testdata/park.gltf")
	require.NoError(t, err, "CLI command failed: %s", output)

	assert.Contains(t, output, "Schema")
	assert.Contains(t, output, "park")
	assert.Contains(t, output, "Enum surface (UINT8)")
	assert.Contains(t, output, "Class bench")
	assert.Regexp(t, `seats\s+SCALAR<UINT8>\s+default=3`, output)
	assert.Regexp(t, `surface\s+ENUM<UINT8>\s+enum=surface`, output)
	assert.Contains(t, output, "Table benches (bench, 12 features)")
	assert.Regexp(t, `_FEATURE_ID_0\s+attribute\s+12\s+benches\s+yes`, output)
	assert.Regexp(t, `_IMPLICIT_FEATURE_ID\s+implicit\s+12`, output)
}

// TestEndToEnd_DescribeJSON renders a schema file as JSON and writes it to a file
func TestEndToEnd_DescribeJSON(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "parks.json")

	output, err := metaval(t, "", "-f", "json", "-o", outputFile, "describe", "../../testdata/parks.json", "-C", "tree")
	require.NoError(t, err, "CLI command failed: %s", output)

	data, err := os.ReadFile(outputFile)
	require.NoError(t, err)

	var report struct {
		SchemaID string `json:"schemaId"`
		Classes  []struct {
			Name       string `json:"name"`
			Properties []struct {
				Name string `json:"name"`
				Type string `json:"type"`
				Min  string `json:"min"`
			} `json:"properties"`
		} `json:"classes"`
	}
	require.NoError(t, json.Unmarshal(data, &report))
	assert.Equal(t, "parks", report.SchemaID)
	require.Len(t, report.Classes, 1)
	assert.Equal(t, "tree", report.Classes[0].Name)
	require.Len(t, report.Classes[0].Properties, 1)
	assert.Equal(t, "SCALAR<FLOAT64>", report.Classes[0].Properties[0].Type)
	assert.Equal(t, "0", report.Classes[0].Properties[0].Min)
}

// TestEndToEnd_Stdin reads the JSON value from stdin
func TestEndToEnd_Stdin(t *testing.T) {
	output, err := metaval(t, "[0.5, 1.5, 2.5]", "-f", "yaml", "infer")
	require.NoError(t, err, "CLI command failed: %s", output)

	assert.Contains(t, output, "type: VEC3<FLOAT32>")
	assert.Contains(t, output, "accessor: vector3f")
}

// TestEndToEnd_EdgeCases tests various edge cases
func TestEndToEnd_EdgeCases(t *testing.T) {
	testCases := []struct {
		name     string
		args     []string
		expected string
		isError  bool
	}{
		{
			name:     "FitNegative",
			args:     []string{"fit", "--", "-1"},
			expected: "unsigned  NONE",
		},
		{
			name:     "FitLargeUnsigned",
			args:     []string{"fit", "18446744073709551615"},
			expected: "unsigned  UINT64",
		},
		{
			name:     "FitSelectedTypes",
			args:     []string{"fit", "[1, 2.5]", "-t", "INT8", "-t", "FLOAT32"},
			expected: "FLOAT32         yes",
		},
		{
			name:     "ValueMatrix",
			args:     []string{"value", "[1, 0, 0, 1]", "-t", "MAT2", "--component", "FLOAT64"},
			expected: "MAT2<FLOAT64>",
		},
		{
			name:     "ValueBooleanArray",
			args:     []string{"value", "[true, false]", "-t", "BOOLEAN", "-a"},
			expected: "BOOLEAN[]",
		},
		{
			name:     "ValueEnum",
			args:     []string{"value", `"Sand"`, "-t", "ENUM", "-s", "../../testdata/parks.json", "-e", "surface"},
			expected: "Sand",
		},
		{
			name:     "InferScalar",
			args:     []string{"infer", "65535"},
			expected: "SCALAR<UINT16>",
		},
		{
			name:     "InferString",
			args:     []string{"infer", `"oak"`},
			expected: "STRING",
		},
		{
			name:    "InferNull",
			args:    []string{"infer", "null"},
			isError: true,
		},
		{
			name:    "InvalidJSON",
			args:    []string{"infer", `{"name": "Invalid JSON",}`},
			isError: true,
		},
		{
			name:    "UnknownComponentType",
			args:    []string{"value", "1", "-t", "SCALAR", "--component", "INT128"},
			isError: true,
		},
		{
			name:    "MissingDocument",
			args:    []string{"describe", "missing.glb"},
			isError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			output, err := metaval(t, "", append([]string{"--no-color"}, tc.args...)...)

			if tc.isError {
				assert.Error(t, err, "Expected error for %s", tc.name)
				assert.Contains(t, output, "For help, run: metaval --help")
				return
			}

			require.NoError(t, err, "CLI command failed: %s", output)
			assert.Contains(t, output, tc.expected)
		})
	}
}

// generateLargeArray writes a JSON array of random numbers to filePath
func generateLargeArray(t testing.TB, filePath string, itemCount int) {
	// Seed random for reproducible results
	rng := rand.New(rand.NewSource(42))

	items := make([]json.Number, itemCount)
	for i := range items {
		if i%2 == 0 {
			items[i] = json.Number(fmt.Sprintf("%d", rng.Intn(60000)-30000))
		} else {
			items[i] = json.Number(fmt.Sprintf("%.3f", rng.Float64()*1000))
		}
	}

	jsonData, err := json.Marshal(items)
	require.NoError(t, err)

	err = os.WriteFile(filePath, jsonData, 0644)
	require.NoError(t, err)
}

// TestEndToEnd_LargeArray computes the fit of a large array read from a file
func TestEndToEnd_LargeArray(t *testing.T) {
	jsonFile := filepath.Join(t.TempDir(), "large.json")
	generateLargeArray(t, jsonFile, 10000)

	output, err := metaval(t, "", "--no-color", "fit", "-i", jsonFile)
	require.NoError(t, err, "CLI command failed: %s", output)

	// Fractional elements only fit a floating type
	assert.Contains(t, output, "signed    NONE")
	assert.Contains(t, output, "unsigned  NONE")
}

// BenchmarkLargeArray benchmarks the fit command with large JSON files
func BenchmarkLargeArray(b *testing.B) {
	// Skip in short mode
	if testing.Short() {
		b.Skip("skipping benchmark in short mode")
	}

	tempDir := b.TempDir()

	sizes := []struct {
		name      string
		itemCount int
	}{
		{"100Items", 100},
		{"10000Items", 10000},
		{"100000Items", 100000},
	}

	for _, size := range sizes {
		b.Run(size.name, func(b *testing.B) {
			jsonFile := filepath.Join(tempDir, fmt.Sprintf("%s.json", size.name))
			generateLargeArray(b, jsonFile, size.itemCount)

			// Reset the timer before the actual benchmark
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				var stdout bytes.Buffer
				cmd := exec.Command("go", "run", "../../main.go", "-f", "json", "fit", "-i", jsonFile)
				cmd.Stdout = &stdout
				require.NoError(b, cmd.Run())
				require.NotZero(b, stdout.Len())
			}
		})
	}
}
