package models

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"github.com/kris-hansen/hwflow/utils/config"
	"github.com/kris-hansen/hwflow/utils/logger"
	"google.golang.org/api/option"
)

// GoogleProvider handles the Gemini family of models
type GoogleProvider struct {
	apiKey      string
	temperature float32
	verbose     bool
	mu          sync.Mutex
}

// NewGoogleProvider creates a new Google provider instance
func NewGoogleProvider() *GoogleProvider {
	return &GoogleProvider{
		temperature: 0.4,
	}
}

// Name returns the provider name
func (g *GoogleProvider) Name() string {
	return "google"
}

// debugf prints debug information if verbose mode is enabled (thread-safe)
func (g *GoogleProvider) debugf(format string, args ...interface{}) {
	if g.verbose {
		g.mu.Lock()
		defer g.mu.Unlock()
		logger.Logger.Debugf("[Google] "+format, args...)
	}
}

// SupportsModel checks if the given model name is a Gemini model
func (g *GoogleProvider) SupportsModel(modelName string) bool {
	supported := GetRegistry().ValidateModel(g.Name(), modelName)
	g.debugf("Model %s supported: %v", modelName, supported)
	return supported
}

// Configure sets the API key
func (g *GoogleProvider) Configure(apiKey string) error {
	if apiKey == "" {
		return &config.MissingCredentialError{Variable: config.GeminiAPIKeyVar}
	}
	g.apiKey = apiKey
	return nil
}

// SetVerbose enables or disables verbose mode
func (g *GoogleProvider) SetVerbose(verbose bool) {
	g.verbose = verbose
}

// SendPrompt runs a single generateContent call against modelName
func (g *GoogleProvider) SendPrompt(ctx context.Context, modelName string, prompt string) (string, error) {
	if g.apiKey == "" {
		return "", &config.MissingCredentialError{Variable: config.GeminiAPIKeyVar}
	}
	g.debugf("Sending prompt to %s (%d characters)", modelName, len(prompt))

	client, err := genai.NewClient(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create Gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(modelName)
	model.SetTemperature(g.temperature)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini %s: %w", modelName, err)
	}

	text, err := responseText(resp)
	if err != nil {
		return "", fmt.Errorf("gemini %s: %w", modelName, err)
	}
	g.debugf("Received %d characters from %s", len(text), modelName)
	return text, nil
}

// responseText concatenates the text parts of the first candidate that has content
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("empty response")
	}
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		var sb strings.Builder
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
		return sb.String(), nil
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != genai.BlockReasonUnspecified {
		return "", fmt.Errorf("prompt blocked: %s", resp.PromptFeedback.BlockReason)
	}
	return "", fmt.Errorf("response contained no candidates")
}
