package generation

import "errors"

// Common errors returned by the generation package
var (
	// ErrGenerationFailed is returned when content synthesis fails for any general reason
	ErrGenerationFailed = errors.New("failed to generate studyset content")

	// ErrInvalidResponse is returned when the LLM response cannot be parsed or is malformed
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrContentBlocked is returned when the LLM blocks the content due to safety filters
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrInvalidConfig is returned when the generator configuration is invalid
	ErrInvalidConfig = errors.New("invalid generator configuration")

	// ErrRenderFailed is returned when a render job cannot be created or has failed
	ErrRenderFailed = errors.New("render failed")

	// ErrRenderNotFound is returned when the rendering collaborator has no job for the ID
	ErrRenderNotFound = errors.New("render job not found")

	// ErrRenderNotReady is returned when downloading a render that has not completed
	ErrRenderNotReady = errors.New("render not ready for download")
)
