package port

import "context"

// AIProvider abstracts the generative and embedding backends.
// Implementations can target Gemini, Ollama, or any compatible API.
type AIProvider interface {
	// ModelName returns the identifier of the generative model being used.
	ModelName() string

	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts in one call.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Generate sends a complete prompt and returns the model's text output.
	Generate(ctx context.Context, prompt string) (string, error)
}
