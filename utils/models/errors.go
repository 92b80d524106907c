package models

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	brtypes "github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	openai "github.com/sashabaranov/go-openai"
	"google.golang.org/api/googleapi"
)

// ErrModelUnavailable marks a model identifier the provider does not serve
var ErrModelUnavailable = errors.New("model unavailable")

// ProviderError is a generation failure that must not be retried on another model
// (authentication, rate limit, quota, malformed request).
type ProviderError struct {
	Model string
	Err   error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("model %s: %v", e.Model, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// ExhaustedError is returned when every model in the chain was unavailable
type ExhaustedError struct {
	Tried []string
	Last  error
}

func (e *ExhaustedError) Error() string {
	last := "Unknown error"
	if e.Last != nil {
		last = e.Last.Error()
	}
	return fmt.Sprintf("No available models found. Tried: %s. Error: %s. Please check your API key and ensure Generative Language API is enabled in Google Cloud Console.",
		strings.Join(e.Tried, ", "), last)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Last
}

// IsModelUnavailable reports whether err means "this model does not exist
// for this account" rather than a failure of the request itself.
func IsModelUnavailable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrModelUnavailable) {
		return true
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Code == http.StatusNotFound {
		return true
	}

	var oerr *openai.APIError
	if errors.As(err, &oerr) && (oerr.HTTPStatusCode == http.StatusNotFound || oerr.Code == "model_not_found") {
		return true
	}

	var rnf *brtypes.ResourceNotFoundException
	if errors.As(err, &rnf) {
		return true
	}

	// SDKs that only surface a message
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "404") ||
		strings.Contains(errMsg, "not found") ||
		strings.Contains(errMsg, "not_found")
}
