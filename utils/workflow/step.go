// Package workflow holds the generated test-step model: the prompt sent to
// the model, normalization of its reply, and the navigation encoding used to
// hand steps to the editor.
package workflow

import (
	"encoding/json"
)

// Grid spacing for steps the model did not place
const (
	GridColumns = 3
	GridXStep   = 250
	GridYStep   = 100
)

// Position is a display coordinate
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// GridPosition is the default position for the step at index
func GridPosition(index int) Position {
	return Position{
		X: float64(GridXStep * (index % GridColumns)),
		Y: float64(GridYStep * (index / GridColumns)),
	}
}

// Step is one unit of a generated test procedure. Fields the model adds
// beyond the known ones are kept in Extra and written back unchanged.
type Step struct {
	ID          string                     `json:"id" yaml:"id"`
	Label       string                     `json:"label" yaml:"label"`
	Description string                     `json:"description,omitempty" yaml:"description,omitempty"`
	Type        string                     `json:"type,omitempty" yaml:"type,omitempty"`
	Parameters  map[string]interface{}     `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Position    *Position                  `json:"position,omitempty" yaml:"position,omitempty"`
	Extra       map[string]json.RawMessage `json:"-" yaml:"-"`
}

// UnmarshalJSON decodes the known fields leniently: a field of the wrong JSON
// type is left at its zero value and kept verbatim in Extra.
func (s *Step) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*s = Step{}
	for key, value := range raw {
		var err error
		switch key {
		case "id":
			err = json.Unmarshal(value, &s.ID)
		case "label":
			err = json.Unmarshal(value, &s.Label)
		case "description":
			err = json.Unmarshal(value, &s.Description)
		case "type":
			err = json.Unmarshal(value, &s.Type)
		case "parameters":
			err = json.Unmarshal(value, &s.Parameters)
		case "position":
			var pos *Position
			if err = json.Unmarshal(value, &pos); err == nil {
				s.Position = pos
			}
		default:
			s.setExtra(key, value)
		}
		if err != nil {
			s.setExtra(key, value)
		}
	}
	return nil
}

// MarshalJSON writes the known fields followed by any preserved extras
func (s Step) MarshalJSON() ([]byte, error) {
	type plain Step
	known, err := json.Marshal(plain(s))
	if err != nil || len(s.Extra) == 0 {
		return known, err
	}

	var merged map[string]json.RawMessage
	if err := json.Unmarshal(known, &merged); err != nil {
		return nil, err
	}
	// A known field that failed to decode is written back in its original form
	for key, value := range s.Extra {
		merged[key] = value
	}
	return json.Marshal(merged)
}

func (s *Step) setExtra(key string, value json.RawMessage) {
	if s.Extra == nil {
		s.Extra = make(map[string]json.RawMessage)
	}
	s.Extra[key] = value
}

// ExtraString returns a string-valued extra field such as "name"
func (s *Step) ExtraString(key string) string {
	value, ok := s.Extra[key]
	if !ok {
		return ""
	}
	var str string
	if err := json.Unmarshal(value, &str); err != nil {
		return ""
	}
	return str
}

// Clone returns a deep copy of the step
func (s Step) Clone() Step {
	out := s
	if s.Parameters != nil {
		out.Parameters = make(map[string]interface{}, len(s.Parameters))
		for k, v := range s.Parameters {
			out.Parameters[k] = v
		}
	}
	if s.Position != nil {
		pos := *s.Position
		out.Position = &pos
	}
	if s.Extra != nil {
		out.Extra = make(map[string]json.RawMessage, len(s.Extra))
		for k, v := range s.Extra {
			out.Extra[k] = v
		}
	}
	return out
}
