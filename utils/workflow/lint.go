package workflow

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/xeipuuv/gojsonschema"
)

// stepsSchema describes the conventions generated steps are expected to follow.
// None of them are enforced when generating or editing.
const stepsSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "label"],
    "properties": {
      "id": {"type": "string", "minLength": 1},
      "label": {"type": "string", "minLength": 1},
      "description": {"type": "string"},
      "type": {"type": "string"},
      "parameters": {
        "type": "object",
        "additionalProperties": {"type": ["string", "number"]}
      },
      "position": {
        "type": "object",
        "required": ["x", "y"],
        "properties": {
          "x": {"type": "number"},
          "y": {"type": "number"}
        }
      }
    }
  }
}`

var schemaLoader = gojsonschema.NewStringLoader(stepsSchema)

// LintIssue is one convention a step list does not follow
type LintIssue struct {
	Field   string `json:"field" yaml:"field"`
	Message string `json:"message" yaml:"message"`
}

func (i LintIssue) String() string {
	return fmt.Sprintf("%s: %s", i.Field, i.Message)
}

// Lint reports convention issues: missing ids or labels, nested parameter
// values, malformed positions and duplicate ids.
func Lint(steps []Step) ([]LintIssue, error) {
	data, err := json.Marshal(steps)
	if err != nil {
		return nil, fmt.Errorf("failed to encode steps: %w", err)
	}
	return LintJSON(data)
}

// LintJSON lints a JSON array of steps
func LintJSON(data []byte) ([]LintIssue, error) {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to validate steps: %w", err)
	}

	var issues []LintIssue
	for _, resultErr := range result.Errors() {
		issues = append(issues, LintIssue{
			Field:   resultErr.Field(),
			Message: resultErr.Description(),
		})
	}

	var entries []struct {
		ID interface{} `json:"id"`
	}
	if err := json.Unmarshal(data, &entries); err == nil {
		seen := make(map[string][]int)
		for i, entry := range entries {
			if id, ok := entry.ID.(string); ok && id != "" {
				seen[id] = append(seen[id], i)
			}
		}
		ids := make([]string, 0, len(seen))
		for id := range seen {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			if indexes := seen[id]; len(indexes) > 1 {
				issues = append(issues, LintIssue{
					Field:   fmt.Sprintf("%d.id", indexes[1]),
					Message: fmt.Sprintf("duplicate step id %q (first used by step %d)", id, indexes[0]),
				})
			}
		}
	}

	return issues, nil
}
