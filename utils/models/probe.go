package models

import (
	"context"

	"github.com/kris-hansen/hwflow/utils/config"
)

// probePrompt is the trivial generation used to check that a model answers
const probePrompt = "test"

// ProbeResult lists the models that answered a probe
type ProbeResult struct {
	AvailableModels []string `json:"availableModels"`
	Recommended     string   `json:"recommended"`
}

// Probe issues a trivial generation against each model in order and stops at
// the first one that answers. Failures of any kind only mark the model unavailable.
func Probe(ctx context.Context, modelNames []string, resolve Resolver) ProbeResult {
	available := []string{}

	for _, modelName := range modelNames {
		provider, err := resolve(modelName)
		if err != nil {
			config.VerboseLog("Model %s not available: %v", modelName, err)
			continue
		}
		if _, err := provider.SendPrompt(ctx, modelName, probePrompt); err != nil {
			config.VerboseLog("Model %s not available: %v", modelName, err)
			continue
		}
		available = append(available, modelName)
		break
	}

	result := ProbeResult{
		AvailableModels: available,
		Recommended:     "none",
	}
	if len(available) > 0 {
		result.Recommended = available[0]
	}
	return result
}
