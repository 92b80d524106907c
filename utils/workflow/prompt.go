package workflow

import (
	"fmt"
)

// MaxDocumentChars is the default number of characters of extracted document
// text included in a prompt
const MaxDocumentChars = 5000

const promptTemplate = `You are a hardware testing workflow generator. Based on the following description%s, generate a structured test workflow with multiple steps.

CRITICAL INSTRUCTION: If you are recommending a test, you MUST provide exact parameters for the test based on the specification sheet. Include specific values such as voltage levels, current limits, frequency ranges, timing parameters, temperature ranges, etc. that are specified in the documentation.

Description: %s

Generate a JSON array of workflow steps. Each step should have:
- id: unique identifier (e.g., "step-1")
- label: short name for the step (e.g., "Power On Test")
- description: detailed description of what to do in this step, including exact test parameters from the spec sheet
- type: type of test (e.g., "power", "gpio", "communication", "measurement")
- parameters: (REQUIRED) An object containing exact test parameters from the spec sheet, such as:
  - voltage: exact voltage values (e.g., "3.3V ± 0.1V")
  - current: exact current limits (e.g., "max 500mA")
  - frequency: exact frequency ranges (e.g., "1MHz to 10MHz")
  - temperature: operating temperature ranges (e.g., "-40°C to +85°C")
  - timing: timing parameters (e.g., "setup time: 10ns, hold time: 5ns")
  - Any other relevant parameters from the spec sheet

Return ONLY valid JSON in this format:
{
  "steps": [
    {
      "id": "step-1",
      "label": "Step Name",
      "description": "Detailed description with exact parameters",
      "type": "test-type",
      "parameters": {
        "voltage": "3.3V ± 0.1V",
        "current": "max 500mA",
        "frequency": "1MHz to 10MHz"
      },
      "position": {"x": 0, "y": 0}
    }
  ]
}`

// documentSection introduces the extracted document text
const documentSection = "\n\nDocument content (if applicable):\n"

// PromptBuilder renders the generation prompt
type PromptBuilder struct {
	// MaxDocumentChars bounds the document text, counted in characters; <= 0 uses the default
	MaxDocumentChars int
}

// BuildPrompt renders the prompt with the default document limit.
// documentText is nil when no document was uploaded.
func BuildPrompt(description string, documentText *string) string {
	return PromptBuilder{}.Build(description, documentText)
}

// Build renders the prompt. The description and document text are interpolated
// as-is; braces in user text can confuse reply extraction downstream.
func (b PromptBuilder) Build(description string, documentText *string) string {
	if documentText == nil {
		return fmt.Sprintf(promptTemplate, "", description)
	}

	limit := b.MaxDocumentChars
	if limit <= 0 {
		limit = MaxDocumentChars
	}

	prompt := fmt.Sprintf(promptTemplate, " and the uploaded document/specification sheet", description)
	return prompt + documentSection + truncateChars(*documentText, limit)
}

// truncateChars keeps the first n characters without splitting a UTF-8 sequence
func truncateChars(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
