package fileutil

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("HWFLOW_TEST_DIR", "/opt/bench")

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty path", input: "", expected: ""},
		{name: "stdio marker", input: "-", expected: "-"},
		{name: "tilde only", input: "~", expected: home},
		{name: "tilde with subpath", input: "~/procedures/burn-in.txt", expected: filepath.Join(home, "procedures/burn-in.txt")},
		{name: "environment variable", input: "$HWFLOW_TEST_DIR/steps.json", expected: "/opt/bench/steps.json"},
		{name: "cleans relative path", input: "./specs/../specs/board.txt", expected: "specs/board.txt"},
		{name: "other user unchanged", input: "~bob/file", expected: "~bob/file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandPath(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestReadInput(t *testing.T) {
	data, err := ReadInput("-", strings.NewReader(`[{"id": "a"}]`))
	require.NoError(t, err)
	assert.Equal(t, `[{"id": "a"}]`, string(data))

	path := filepath.Join(t.TempDir(), "steps.json")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0644))
	data, err = ReadInput(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	_, err = ReadInput(filepath.Join(t.TempDir(), "missing.json"), nil)
	assert.Error(t, err)
}

func TestWriteOutput(t *testing.T) {
	var stdout bytes.Buffer
	require.NoError(t, WriteOutput("", []byte("a"), &stdout))
	require.NoError(t, WriteOutput("-", []byte("b"), &stdout))
	assert.Equal(t, "ab", stdout.String())

	path := filepath.Join(t.TempDir(), "nested", "dir", "steps.yaml")
	require.NoError(t, WriteOutput(path, []byte("steps: []\n"), &stdout))
	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "steps: []\n", string(written))
	assert.Equal(t, "ab", stdout.String())
}

func TestIsYAML(t *testing.T) {
	assert.True(t, IsYAML("steps.yaml"))
	assert.True(t, IsYAML("STEPS.YML"))
	assert.False(t, IsYAML("steps.json"))
	assert.False(t, IsYAML("yaml"))
}
