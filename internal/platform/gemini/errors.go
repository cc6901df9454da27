package gemini

import "errors"

// Error definitions for the gemini package.
var (
	// ErrEmptyPrompt is returned when a generation or render prompt is empty.
	ErrEmptyPrompt = errors.New("prompt cannot be empty")

	// ErrEmptyRenderID is returned when a render operation name is empty.
	ErrEmptyRenderID = errors.New("render ID cannot be empty")
)
