// Package gemini implements generation.Generator on top of Google's Gemini
// API (google.golang.org/genai).
//
// Prompts are rendered from a text/template, either the embedded default or
// an override file named in config.LLMConfig.PromptTemplatePath. Calls that
// fail with transient errors are retried with exponential backoff and
// jitter. Model output is handed to generation.ParseDistractions, so a
// response is either a clean list of strings or ErrInvalidResponse.
package gemini
