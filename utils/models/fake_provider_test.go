package models

import (
	"context"
	"fmt"
)

type fakeResponse struct {
	text string
	err  error
}

// fakeProvider answers per model and records every model it was asked about
type fakeProvider struct {
	name       string
	responses  map[string]fakeResponse
	calls      []string
	prompts    []string
	credential string
	verbose    bool
}

func newFakeProvider(responses map[string]fakeResponse) *fakeProvider {
	return &fakeProvider{name: "fake", responses: responses}
}

func (f *fakeProvider) Name() string              { return f.name }
func (f *fakeProvider) SupportsModel(string) bool { return true }
func (f *fakeProvider) SetVerbose(verbose bool)   { f.verbose = verbose }

func (f *fakeProvider) Configure(credential string) error {
	f.credential = credential
	return nil
}

func (f *fakeProvider) SendPrompt(_ context.Context, modelName, prompt string) (string, error) {
	f.calls = append(f.calls, modelName)
	f.prompts = append(f.prompts, prompt)
	resp, ok := f.responses[modelName]
	if !ok {
		return "", fmt.Errorf("unexpected model %s", modelName)
	}
	return resp.text, resp.err
}

func resolverFor(p Provider) Resolver {
	return func(string) (Provider, error) {
		return p, nil
	}
}
