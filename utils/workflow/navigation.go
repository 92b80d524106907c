package workflow

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// StepsParam is the query parameter that carries steps to the editor
const StepsParam = "steps"

// EncodeStepsParam serializes steps as the value of the steps query parameter
func EncodeStepsParam(steps []Step) (string, error) {
	if steps == nil {
		steps = []Step{}
	}
	data, err := json.Marshal(steps)
	if err != nil {
		return "", fmt.Errorf("failed to encode steps: %w", err)
	}
	return url.QueryEscape(string(data)), nil
}

// EditQuery returns a full query string, e.g. "steps=%5B...%5D"
func EditQuery(steps []Step) (string, error) {
	value, err := EncodeStepsParam(steps)
	if err != nil {
		return "", err
	}
	return StepsParam + "=" + value, nil
}

// DecodeStepsParam parses an encoded steps value. Both the escaped form and
// already-unescaped JSON are accepted.
func DecodeStepsParam(value string) ([]Step, error) {
	decoded := strings.TrimSpace(value)
	if !strings.HasPrefix(decoded, "[") {
		unescaped, err := url.QueryUnescape(decoded)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidStepsParam, err)
		}
		decoded = strings.TrimSpace(unescaped)
	}
	if decoded == "" {
		return nil, nil
	}

	var steps []Step
	if err := json.Unmarshal([]byte(decoded), &steps); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStepsParam, err)
	}
	return steps, nil
}

// StepsFromQuery extracts steps from a raw query string such as "steps=...&x=1".
// A missing parameter yields no steps and no error.
func StepsFromQuery(rawQuery string) ([]Step, error) {
	rawQuery = strings.TrimPrefix(rawQuery, "?")
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStepsParam, err)
	}
	param := values.Get(StepsParam)
	if param == "" {
		return nil, nil
	}

	var steps []Step
	if err := json.Unmarshal([]byte(param), &steps); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStepsParam, err)
	}
	return steps, nil
}
