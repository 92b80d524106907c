package models

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	brtypes "github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConverseText(t *testing.T) {
	out := &bedrockruntime.ConverseOutput{
		Output: &brtypes.ConverseOutputMemberMessage{
			Value: brtypes.Message{
				Role: brtypes.ConversationRoleAssistant,
				Content: []brtypes.ContentBlock{
					&brtypes.ContentBlockMemberText{Value: "Here is the workflow: "},
					&brtypes.ContentBlockMemberText{Value: `{"steps": []}`},
				},
			},
		},
	}

	text, err := converseText(out)
	require.NoError(t, err)
	assert.Equal(t, `Here is the workflow: {"steps": []}`, text)
}

func TestConverseTextErrors(t *testing.T) {
	_, err := converseText(nil)
	assert.Error(t, err)

	_, err = converseText(&bedrockruntime.ConverseOutput{})
	assert.Error(t, err)
}

func TestBedrockProviderSupportsModel(t *testing.T) {
	provider := NewBedrockProvider()
	assert.True(t, provider.SupportsModel("anthropic.claude-3-5-sonnet-20240620-v1:0"))
	assert.True(t, provider.SupportsModel("eu.meta.llama3-2-3b-instruct-v1:0"))
	assert.False(t, provider.SupportsModel("gemini-2.5-flash"))
}
