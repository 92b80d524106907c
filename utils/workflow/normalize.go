package workflow

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kris-hansen/hwflow/utils/config"
	"github.com/tidwall/gjson"
)

// Normalize turns the model's raw reply into steps. The JSON object is taken
// greedily from the first '{' to the last '}'. When that span does not parse,
// balanced top-level objects are tried in order before giving up.
// Every returned step has a position. Entries that are not objects become
// empty steps so the editor can still hydrate them with defaults.
func Normalize(raw string) ([]Step, error) {
	candidate, ok := greedyObject(raw)
	if !ok {
		return nil, fmt.Errorf("%w: no JSON found in response", ErrMalformedResponse)
	}

	steps, err := parseSteps(candidate)
	if err == nil {
		return steps, nil
	}

	for _, object := range balancedObjects(raw) {
		if object == candidate {
			continue
		}
		if recovered, recoverErr := parseSteps(object); recoverErr == nil {
			config.DebugLog("Recovered steps from a balanced JSON object after greedy extraction failed: %v", err)
			return recovered, nil
		}
	}
	return nil, err
}

// greedyObject returns the text from the first '{' through the last '}'
func greedyObject(raw string) (string, bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return "", false
	}
	return raw[start : end+1], true
}

// parseSteps reads the steps array and fills in missing positions
func parseSteps(candidate string) ([]Step, error) {
	if !gjson.Valid(candidate) {
		return nil, fmt.Errorf("%w: response is not valid JSON", ErrMalformedResponse)
	}

	stepsResult := gjson.Get(candidate, "steps")
	if !stepsResult.IsArray() {
		return nil, fmt.Errorf("%w: response has no steps array", ErrMalformedResponse)
	}

	entries := stepsResult.Array()
	steps := make([]Step, 0, len(entries))
	for i, entry := range entries {
		var step Step
		if entry.IsObject() {
			if err := json.Unmarshal([]byte(entry.Raw), &step); err != nil {
				return nil, fmt.Errorf("%w: step %d: %v", ErrMalformedResponse, i, err)
			}
		} else {
			config.DebugLog("Step %d is not an object, using an empty step: %s", i, entry.Raw)
		}

		// Anything that did not decode to {x, y} is replaced by the grid default
		if step.Position == nil {
			grid := GridPosition(i)
			step.Position = &grid
			delete(step.Extra, "position")
		}
		steps = append(steps, step)
	}
	return steps, nil
}

// balancedObjects returns every top-level brace-balanced span, skipping braces inside strings
func balancedObjects(raw string) []string {
	var objects []string
	depth := 0
	start := -1
	inString := false
	escaped := false

	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			if depth > 0 {
				inString = true
			}
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 {
				objects = append(objects, raw[start:i+1])
			}
		}
	}
	return objects
}
