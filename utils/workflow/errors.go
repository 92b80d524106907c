package workflow

import "errors"

// Sentinel errors for workflow operations.
var (
	// ErrMalformedResponse means the model reply held no usable JSON object
	ErrMalformedResponse = errors.New("malformed response")
	// ErrInvalidStepsParam means the navigation parameter did not decode to a step list
	ErrInvalidStepsParam = errors.New("invalid steps parameter")
)
