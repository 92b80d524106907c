package workflow

import (
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSteps() []Step {
	return []Step{
		{
			ID:          "step-1",
			Label:       "Power On Test",
			Description: "Apply 3.3V ± 0.1V & verify < 500mA",
			Type:        "power",
			Parameters:  map[string]interface{}{"voltage": "3.3V ± 0.1V", "current": "max 500mA", "rails": float64(2)},
			Position:    &Position{X: 0, Y: 0},
		},
		{
			ID:       "step-2",
			Label:    "Thermal soak +85°C",
			Type:     "temperature",
			Position: &Position{X: 250, Y: 0},
		},
	}
}

func TestEncodeDecodeStepsParamRoundTrip(t *testing.T) {
	steps := sampleSteps()

	encoded, err := EncodeStepsParam(steps)
	require.NoError(t, err)
	assert.NotContains(t, encoded, "&")
	assert.NotContains(t, encoded, " ")

	decoded, err := DecodeStepsParam(encoded)
	require.NoError(t, err)
	require.Len(t, decoded, 2)
	for i := range steps {
		assert.Equal(t, steps[i].ID, decoded[i].ID)
		assert.Equal(t, steps[i].Label, decoded[i].Label)
		assert.Equal(t, steps[i].Description, decoded[i].Description)
		assert.Equal(t, steps[i].Parameters, decoded[i].Parameters)
		assert.Equal(t, steps[i].Position, decoded[i].Position)
	}
}

func TestEditQueryParsesWithStepsFromQuery(t *testing.T) {
	query, err := EditQuery(sampleSteps())
	require.NoError(t, err)

	parsed, err := url.ParseQuery(query)
	require.NoError(t, err)
	assert.NotEmpty(t, parsed.Get(StepsParam))

	steps, err := StepsFromQuery("?" + query + "&view=compact")
	require.NoError(t, err)
	require.Len(t, steps, 2)
	assert.Equal(t, "Thermal soak +85°C", steps[1].Label)
}

func TestDecodeStepsParamAcceptsRawJSON(t *testing.T) {
	steps, err := DecodeStepsParam(`[{"id": "a", "label": "+5V rail 100%"}]`)
	require.NoError(t, err)
	require.Len(t, steps, 1)
	assert.Equal(t, "+5V rail 100%", steps[0].Label)
}

func TestDecodeStepsParamErrors(t *testing.T) {
	for _, value := range []string{"%7Bnot-json", "[1, 2", url.QueryEscape(`{"steps": []}`), "%zz"} {
		_, err := DecodeStepsParam(value)
		assert.True(t, errors.Is(err, ErrInvalidStepsParam), value)
	}

	steps, err := DecodeStepsParam("   ")
	assert.NoError(t, err)
	assert.Nil(t, steps)
}

func TestStepsFromQueryMissingParam(t *testing.T) {
	steps, err := StepsFromQuery("view=compact")
	assert.NoError(t, err)
	assert.Nil(t, steps)

	_, err = StepsFromQuery("steps=not-json")
	assert.True(t, errors.Is(err, ErrInvalidStepsParam))
}

func TestEncodeNilSteps(t *testing.T) {
	encoded, err := EncodeStepsParam(nil)
	require.NoError(t, err)
	assert.Equal(t, url.QueryEscape("[]"), encoded)
}
