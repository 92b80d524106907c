package models

import (
	"context"
	"fmt"
	"sync"

	"github.com/kris-hansen/hwflow/utils/config"
)

// Provider represents a model provider (e.g., Google, OpenAI)
type Provider interface {
	Name() string
	SupportsModel(modelName string) bool
	SendPrompt(ctx context.Context, modelName string, prompt string) (string, error)
	Configure(credential string) error
	SetVerbose(verbose bool)
}

// DetectProviderFunc is the type for the provider detection function
type DetectProviderFunc func(modelName string) Provider

// DetectProvider determines the appropriate provider based on the model name
var DetectProvider DetectProviderFunc = defaultDetectProvider

// defaultDetectProvider returns a fresh, unconfigured provider or nil
func defaultDetectProvider(modelName string) Provider {
	config.DebugLog("[Provider] Attempting to detect provider for model: %s", modelName)

	// Order from most specific to most general
	providers := []Provider{
		NewOllamaProvider(),  // Handles ollama/ model ids
		NewBedrockProvider(), // Handles anthropic./amazon./meta. model ids
		NewGoogleProvider(),  // Handles gemini- models
		NewOpenAIProvider(),  // Handles gpt- and o-series models
	}

	for _, provider := range providers {
		if provider.SupportsModel(modelName) {
			config.DebugLog("[Provider] Found provider %s for model %s", provider.Name(), modelName)
			return provider
		}
	}

	config.DebugLog("[Provider] No provider found for model %s", modelName)
	return nil
}

// Resolver returns a provider that is ready to serve modelName
type Resolver func(modelName string) (Provider, error)

// NewResolver detects providers by model name and configures each one once
// with its credential from cfg. The returned Resolver is safe for concurrent use.
func NewResolver(cfg *config.EnvConfig) Resolver {
	var mu sync.Mutex
	configured := make(map[string]Provider)

	return func(modelName string) (Provider, error) {
		provider := DetectProvider(modelName)
		if provider == nil {
			return nil, fmt.Errorf("%w: no provider supports model %s", ErrModelUnavailable, modelName)
		}

		mu.Lock()
		defer mu.Unlock()

		if cached, ok := configured[provider.Name()]; ok {
			return cached, nil
		}

		credential, err := cfg.CredentialFor(provider.Name())
		if err != nil {
			return nil, err
		}
		if err := provider.Configure(credential); err != nil {
			return nil, fmt.Errorf("failed to configure provider %s: %w", provider.Name(), err)
		}
		if openaiProvider, ok := provider.(*OpenAIProvider); ok && cfg.OpenAIBaseURL != "" {
			openaiProvider.SetBaseURL(cfg.OpenAIBaseURL)
		}
		provider.SetVerbose(config.Debug)
		configured[provider.Name()] = provider
		return provider, nil
	}
}

// CheckCredentials verifies that every provider needed by modelNames has a
// credential. Models no provider recognises are left for the fallback chain to skip.
func CheckCredentials(cfg *config.EnvConfig, modelNames []string) error {
	seen := make(map[string]bool)
	for _, name := range modelNames {
		provider := DetectProvider(name)
		if provider == nil || seen[provider.Name()] {
			continue
		}
		seen[provider.Name()] = true
		if _, err := cfg.CredentialFor(provider.Name()); err != nil {
			return err
		}
	}
	return nil
}
