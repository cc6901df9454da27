// Package gemini implements the generation collaborators on Google's
// generative AI API (google.golang.org/genai):
//
//   - ContentGenerator asks a Gemini model for a complete studyset (topic
//     outline, questions, posts, image prompts and reel prompts) as JSON
//     constrained by a response schema, then validates it against the
//     embedded JSON Schema before decoding.
//   - VideoRenderer creates Veo long-running video operations, reports their
//     state and downloads finished videos.
//   - ImageRenderer generates a single image per prompt with Imagen.
//
// Each type talks to the SDK through a narrow interface so tests can
// substitute fakes without network access.
package gemini
