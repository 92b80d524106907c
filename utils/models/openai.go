package models

import (
	"context"
	"fmt"
	"sync"

	"github.com/kris-hansen/hwflow/utils/config"
	"github.com/kris-hansen/hwflow/utils/logger"
	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider handles gpt- and o-series chat models
type OpenAIProvider struct {
	apiKey  string
	baseURL string
	verbose bool
	mu      sync.Mutex
}

// NewOpenAIProvider creates a new OpenAI provider instance
func NewOpenAIProvider() *OpenAIProvider {
	return &OpenAIProvider{}
}

// Name returns the provider name
func (o *OpenAIProvider) Name() string {
	return "openai"
}

// debugf prints debug information if verbose mode is enabled (thread-safe)
func (o *OpenAIProvider) debugf(format string, args ...interface{}) {
	if o.verbose {
		o.mu.Lock()
		defer o.mu.Unlock()
		logger.Logger.Debugf("[OpenAI] "+format, args...)
	}
}

// SupportsModel checks if the given model name is an OpenAI chat model
func (o *OpenAIProvider) SupportsModel(modelName string) bool {
	return GetRegistry().ValidateModel(o.Name(), modelName)
}

// Configure sets the API key
func (o *OpenAIProvider) Configure(apiKey string) error {
	if apiKey == "" {
		return &config.MissingCredentialError{Variable: config.OpenAIAPIKeyVar}
	}
	o.apiKey = apiKey
	return nil
}

// SetBaseURL points the client at an OpenAI-compatible endpoint
func (o *OpenAIProvider) SetBaseURL(baseURL string) {
	o.baseURL = baseURL
}

// SetVerbose enables or disables verbose mode
func (o *OpenAIProvider) SetVerbose(verbose bool) {
	o.verbose = verbose
}

// SendPrompt sends a single user message and returns the first choice
func (o *OpenAIProvider) SendPrompt(ctx context.Context, modelName string, prompt string) (string, error) {
	if o.apiKey == "" {
		return "", &config.MissingCredentialError{Variable: config.OpenAIAPIKeyVar}
	}
	o.debugf("Sending prompt to %s (%d characters)", modelName, len(prompt))

	clientConfig := openai.DefaultConfig(o.apiKey)
	if o.baseURL != "" {
		clientConfig.BaseURL = o.baseURL
	}
	client := openai.NewClientWithConfig(clientConfig)

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: modelName,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai %s: %w", modelName, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai %s: response contained no choices", modelName)
	}

	o.debugf("Received %d characters from %s", len(resp.Choices[0].Message.Content), modelName)
	return resp.Choices[0].Message.Content, nil
}
