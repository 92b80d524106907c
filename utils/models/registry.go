package models

import (
	"sort"
	"strings"
	"sync"
)

// ModelRegistry maps providers to the model names and families they accept
type ModelRegistry struct {
	// Map of provider name to list of supported models
	models map[string][]string
	// Map of provider name to list of model families (prefixes)
	families map[string][]string
	mu       sync.RWMutex
}

// Global instance of the model registry
var globalRegistry = NewModelRegistry()

// NewModelRegistry creates a registry populated with the default models
func NewModelRegistry() *ModelRegistry {
	registry := &ModelRegistry{
		models:   make(map[string][]string),
		families: make(map[string][]string),
	}
	registry.initializeDefaultModels()
	return registry
}

func (r *ModelRegistry) initializeDefaultModels() {
	// Google models, including the aliases the default fallback chain tries
	r.RegisterModels("google", []string{
		"gemini-2.5-pro",
		"gemini-2.5-flash",
		"gemini-2.5-flash-latest",
		"gemini-2.5-flash-lite",
		"gemini-1.5-flash",
		"gemini-1.5-flash-latest",
		"gemini-1.5-pro",
		"gemini-1.5-pro-latest",
		"gemini-pro",
	})
	r.RegisterFamilies("google", []string{
		"gemini-",
	})

	r.RegisterModels("openai", []string{
		"gpt-4.1",
		"gpt-4o",
		"gpt-4o-mini",
		"o3",
		"o3-mini",
		"o4-mini",
	})
	r.RegisterFamilies("openai", []string{
		"gpt-",
		"chatgpt-",
		"o1",
		"o3",
		"o4",
	})

	// Local models are addressed as ollama/<name>
	r.RegisterFamilies("ollama", []string{
		"ollama/",
	})

	// Bedrock model ids are namespaced by vendor, optionally with a region prefix
	r.RegisterFamilies("bedrock", []string{
		"anthropic.",
		"amazon.",
		"meta.",
		"mistral.",
		"cohere.",
		"us.",
		"eu.",
		"apac.",
	})
}

// RegisterModels adds models to the registry for a specific provider
func (r *ModelRegistry) RegisterModels(provider string, models []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.models[provider] = append(r.models[provider], models...)
}

// RegisterFamilies adds model families (prefixes) to the registry for a specific provider
func (r *ModelRegistry) RegisterFamilies(provider string, families []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.families[provider] = append(r.families[provider], families...)
}

// GetModels returns the list of models for a specific provider
func (r *ModelRegistry) GetModels(provider string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string{}, r.models[provider]...)
}

// GetFamilies returns the list of model families for a specific provider
func (r *ModelRegistry) GetFamilies(provider string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string{}, r.families[provider]...)
}

// Providers returns the registered provider names in sorted order
func (r *ModelRegistry) Providers() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool)
	for provider := range r.models {
		seen[provider] = true
	}
	for provider := range r.families {
		seen[provider] = true
	}
	providers := make([]string, 0, len(seen))
	for provider := range seen {
		providers = append(providers, provider)
	}
	sort.Strings(providers)
	return providers
}

// ValidateModel checks if a model is valid for a specific provider
func (r *ModelRegistry) ValidateModel(provider string, modelName string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	modelName = strings.TrimSpace(strings.ToLower(modelName))
	if modelName == "" {
		return false
	}

	for _, valid := range r.models[provider] {
		if modelName == valid {
			return true
		}
	}

	// Families keep newly released model names working without a registry update
	for _, family := range r.families[provider] {
		if strings.HasPrefix(modelName, family) {
			return true
		}
	}

	return false
}

// GetRegistry returns the global model registry instance
func GetRegistry() *ModelRegistry {
	return globalRegistry
}
