package fileutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Stdio is the path that selects standard input or standard output
const Stdio = "-"

// ExpandPath expands environment variables and a leading ~ or ~/ and cleans
// the result. ~user is returned cleaned but otherwise unchanged.
func ExpandPath(path string) (string, error) {
	if path == "" || path == Stdio {
		return path, nil
	}

	path = os.ExpandEnv(path)

	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve home directory: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}

	return filepath.Clean(path), nil
}

// ReadInput reads a whole file, or stdin when path is "-"
func ReadInput(path string, stdin io.Reader) ([]byte, error) {
	if path == Stdio {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}

	expanded, err := ExpandPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// WriteOutput writes data to a file, creating parent directories, or to
// stdout when path is "" or "-"
func WriteOutput(path string, data []byte, stdout io.Writer) error {
	if path == "" || path == Stdio {
		_, err := stdout.Write(data)
		return err
	}

	expanded, err := ExpandPath(path)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(expanded); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(expanded, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// IsYAML reports whether a path has a .yaml or .yml extension
func IsYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
