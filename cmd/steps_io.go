package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/kris-hansen/hwflow/utils/fileutil"
	"github.com/kris-hansen/hwflow/utils/tui"
	"github.com/kris-hansen/hwflow/utils/workflow"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

const (
	formatJSON  = "json"
	formatYAML  = "yaml"
	formatTable = "table"
)

// readStepsJSON reads a steps file as a JSON array. YAML files are converted,
// and a {"steps": [...]} envelope is unwrapped.
func readStepsJSON(path string, stdin io.Reader) ([]byte, error) {
	data, err := fileutil.ReadInput(path, stdin)
	if err != nil {
		return nil, err
	}

	if fileutil.IsYAML(path) {
		var generic interface{}
		if err := yaml.Unmarshal(data, &generic); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
		if data, err = json.Marshal(generic); err != nil {
			return nil, fmt.Errorf("failed to convert YAML: %w", err)
		}
	}

	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%s does not contain valid JSON", path)
	}
	if result := gjson.ParseBytes(data); result.IsObject() {
		inner := result.Get("steps")
		if !inner.IsArray() {
			return nil, fmt.Errorf("%s has no steps array", path)
		}
		data = []byte(inner.Raw)
	}
	return data, nil
}

// readSteps reads a steps file
func readSteps(path string, stdin io.Reader) ([]workflow.Step, error) {
	data, err := readStepsJSON(path, stdin)
	if err != nil {
		return nil, err
	}
	var steps []workflow.Step
	if err := json.Unmarshal(data, &steps); err != nil {
		return nil, fmt.Errorf("failed to parse steps: %w", err)
	}
	return steps, nil
}

func validateFormat(format string) error {
	switch strings.ToLower(format) {
	case formatJSON, formatYAML, formatTable, "":
		return nil
	}
	return fmt.Errorf("unknown format %q (use json, yaml or table)", format)
}

// formatSteps renders steps for output
func formatSteps(steps []workflow.Step, format string) ([]byte, error) {
	if err := validateFormat(format); err != nil {
		return nil, err
	}
	if steps == nil {
		steps = []workflow.Step{}
	}

	switch strings.ToLower(format) {
	case formatJSON, "":
		data, err := json.MarshalIndent(steps, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case formatYAML:
		return yaml.Marshal(steps)
	default:
		return []byte(tui.RenderStepsTable(steps) + "\n"), nil
	}
}
