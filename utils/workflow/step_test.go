package workflow

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepPreservesUnknownFields(t *testing.T) {
	var step Step
	require.NoError(t, json.Unmarshal([]byte(`{"id": "s1", "name": "Legacy name", "duration": 30}`), &step))

	assert.Equal(t, "s1", step.ID)
	assert.Equal(t, "Legacy name", step.ExtraString("name"))
	assert.Equal(t, "", step.ExtraString("duration"))
	assert.Equal(t, "", step.ExtraString("missing"))

	data, err := json.Marshal(step)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id": "s1", "label": "", "name": "Legacy name", "duration": 30}`, string(data))
}

func TestStepUnmarshalRejectsNonObject(t *testing.T) {
	var step Step
	assert.Error(t, json.Unmarshal([]byte(`"just text"`), &step))
}

func TestStepClone(t *testing.T) {
	original := Step{
		ID:         "s1",
		Parameters: map[string]interface{}{"voltage": "5V"},
		Position:   &Position{X: 1, Y: 2},
		Extra:      map[string]json.RawMessage{"name": json.RawMessage(`"x"`)},
	}

	clone := original.Clone()
	clone.Parameters["voltage"] = "12V"
	clone.Position.X = 99
	clone.Extra["name"] = json.RawMessage(`"y"`)

	assert.Equal(t, "5V", original.Parameters["voltage"])
	assert.Equal(t, float64(1), original.Position.X)
	assert.Equal(t, `"x"`, string(original.Extra["name"]))
}
