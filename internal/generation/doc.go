// Package generation defines the boundary between the application core and
// the external generative collaborators: content synthesis (prompt to
// structured feed content), video rendering (create, retrieve, download) and
// image rendering. Concrete implementations live in internal/platform/gemini.
package generation
