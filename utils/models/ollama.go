package models

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/kris-hansen/hwflow/utils/config"
	"github.com/kris-hansen/hwflow/utils/logger"
)

// OllamaModelPrefix marks model ids served by a local Ollama host, e.g. "ollama/llama3.1"
const OllamaModelPrefix = "ollama/"

// OllamaProvider handles models pulled into a local Ollama host
type OllamaProvider struct {
	host    string
	client  *http.Client
	verbose bool
	mu      sync.Mutex
}

// OllamaRequest represents the request structure for the Ollama generate API
type OllamaRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

// OllamaResponse is one chunk of a generate response
type OllamaResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
	Error    string `json:"error,omitempty"`
}

// NewOllamaProvider creates a new Ollama provider instance
func NewOllamaProvider() *OllamaProvider {
	return &OllamaProvider{
		host:   config.DefaultOllamaHost,
		client: &http.Client{},
	}
}

// Name returns the provider name
func (o *OllamaProvider) Name() string {
	return "ollama"
}

// debugf prints debug information if verbose mode is enabled (thread-safe)
func (o *OllamaProvider) debugf(format string, args ...interface{}) {
	if o.verbose {
		o.mu.Lock()
		defer o.mu.Unlock()
		logger.Logger.Debugf("[Ollama] "+format, args...)
	}
}

// SupportsModel accepts ids carrying the ollama/ prefix
func (o *OllamaProvider) SupportsModel(modelName string) bool {
	return GetRegistry().ValidateModel(o.Name(), modelName)
}

// Configure sets the host URL. Ollama needs no API key; an empty value keeps the default host.
func (o *OllamaProvider) Configure(host string) error {
	host = strings.TrimSpace(host)
	if host == "" {
		host = config.DefaultOllamaHost
	}
	if !strings.Contains(host, "://") {
		host = "http://" + host
	}
	o.host = strings.TrimRight(host, "/")
	o.debugf("Using Ollama host %s", o.host)
	return nil
}

// SetVerbose enables or disables verbose mode
func (o *OllamaProvider) SetVerbose(verbose bool) {
	o.verbose = verbose
}

// SendPrompt runs a non-streaming generation. A model that has not been
// pulled is reported as ErrModelUnavailable.
func (o *OllamaProvider) SendPrompt(ctx context.Context, modelName string, prompt string) (string, error) {
	localName := strings.TrimPrefix(modelName, OllamaModelPrefix)
	o.debugf("Sending prompt to %s (%d characters)", localName, len(prompt))

	body, err := json.Marshal(OllamaRequest{Model: localName, Prompt: prompt, Stream: false})
	if err != nil {
		return "", fmt.Errorf("error marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.host+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("error calling Ollama API: %w (is Ollama running?)", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		o.debugf("Ollama API returned status %d: %s", resp.StatusCode, string(bodyBytes))
		if resp.StatusCode == http.StatusNotFound {
			return "", fmt.Errorf("%w: ollama model %s: %s", ErrModelUnavailable, localName, strings.TrimSpace(string(bodyBytes)))
		}
		return "", fmt.Errorf("ollama API error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(bodyBytes)))
	}

	// The API may still answer with newline-delimited chunks
	var full strings.Builder
	decoder := json.NewDecoder(resp.Body)
	for {
		var chunk OllamaResponse
		if err := decoder.Decode(&chunk); err != nil {
			if err == io.EOF {
				break
			}
			return "", fmt.Errorf("error decoding response: %w", err)
		}
		if chunk.Error != "" {
			return "", fmt.Errorf("ollama: %s", chunk.Error)
		}
		full.WriteString(chunk.Response)
		if chunk.Done {
			break
		}
	}

	o.debugf("Response length: %d characters", full.Len())
	return full.String(), nil
}
