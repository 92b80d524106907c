package server

import (
	"context"
	"fmt"
	"sync"

	"github.com/kris-hansen/hwflow/utils/models"
)

type fakeReply struct {
	text string
	err  error
}

// fakeProvider answers per model and records the prompts it received
type fakeProvider struct {
	mu      sync.Mutex
	replies map[string]fakeReply
	calls   []string
	prompts []string
}

func (f *fakeProvider) Name() string              { return "google" }
func (f *fakeProvider) SupportsModel(string) bool { return true }
func (f *fakeProvider) Configure(string) error    { return nil }
func (f *fakeProvider) SetVerbose(bool)           {}

func (f *fakeProvider) SendPrompt(_ context.Context, modelName, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, modelName)
	f.prompts = append(f.prompts, prompt)
	reply, ok := f.replies[modelName]
	if !ok {
		return "", fmt.Errorf("%w: %s", models.ErrModelUnavailable, modelName)
	}
	return reply.text, reply.err
}

func (f *fakeProvider) resolver() models.Resolver {
	return func(string) (models.Provider, error) {
		return f, nil
	}
}
