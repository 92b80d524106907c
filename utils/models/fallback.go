package models

import (
	"context"
	"fmt"

	"github.com/kris-hansen/hwflow/utils/config"
)

// Generation is the text produced by the first model in the chain that answered
type Generation struct {
	Model string
	Text  string
}

// FallbackInvoker tries an ordered list of models one at a time. A model the
// provider does not know is skipped; any other failure ends the chain.
type FallbackInvoker struct {
	models  []string
	resolve Resolver
}

// NewFallbackInvoker creates an invoker over modelNames, in order
func NewFallbackInvoker(modelNames []string, resolve Resolver) *FallbackInvoker {
	return &FallbackInvoker{
		models:  append([]string{}, modelNames...),
		resolve: resolve,
	}
}

// Models returns the chain in the order it is tried
func (f *FallbackInvoker) Models() []string {
	return append([]string{}, f.models...)
}

// Invoke sends prompt down the chain and returns the first successful generation
func (f *FallbackInvoker) Invoke(ctx context.Context, prompt string) (*Generation, error) {
	var lastErr error

	for _, modelName := range f.models {
		provider, err := f.resolve(modelName)
		if err != nil {
			if IsModelUnavailable(err) {
				config.VerboseLog("Model %s not available, trying next...", modelName)
				lastErr = err
				continue
			}
			return nil, err
		}

		config.DebugLog("Sending prompt to LLM: model=%s, provider=%s, prompt_length=%d", modelName, provider.Name(), len(prompt))
		text, err := provider.SendPrompt(ctx, modelName, prompt)
		if err == nil {
			config.VerboseLog("Generated workflow with model %s", modelName)
			return &Generation{Model: modelName, Text: text}, nil
		}

		lastErr = err
		if IsModelUnavailable(err) {
			config.VerboseLog("Model %s not available, trying next...", modelName)
			continue
		}
		return nil, &ProviderError{Model: modelName, Err: err}
	}

	if len(f.models) == 0 {
		lastErr = fmt.Errorf("no models configured")
	}
	return nil, &ExhaustedError{Tried: f.Models(), Last: lastErr}
}
