// Package ai implements port.AIProvider on top of langchaingo backends.
package ai

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/ollama"

	"github.com/vaultify/backend/internal/port"
)

// embedder is the slice of the langchaingo client surface used for embeddings.
// Both googleai.GoogleAI and ollama.LLM satisfy it.
type embedder interface {
	CreateEmbedding(ctx context.Context, texts []string) ([][]float32, error)
}

// Provider backs port.AIProvider with a langchaingo chat model and embedder.
type Provider struct {
	chat        llms.Model
	embed       embedder
	model       string
	maxTokens   int
	temperature float64
}

// Compile-time check that Provider implements port.AIProvider.
var _ port.AIProvider = (*Provider)(nil)

// NewGemini creates a Gemini-backed provider using the supplied API key.
// chatModel and embedModel name the generative and embedding models.
func NewGemini(ctx context.Context, apiKey, chatModel, embedModel string, maxTokens int) (*Provider, error) {
	client, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(chatModel),
		googleai.WithDefaultEmbeddingModel(embedModel),
	)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &Provider{
		chat:      client,
		embed:     client,
		model:     chatModel,
		maxTokens: maxTokens,
	}, nil
}

// NewOllama creates a provider talking to a local Ollama server. Separate
// model names are used for chat and embeddings (e.g. qwen3 / nomic-embed-text).
func NewOllama(host, chatModel, embedModel string, maxTokens int) (*Provider, error) {
	chat, err := ollama.New(
		ollama.WithModel(chatModel),
		ollama.WithServerURL(host),
	)
	if err != nil {
		return nil, fmt.Errorf("create ollama chat model: %w", err)
	}

	embed, err := ollama.New(
		ollama.WithModel(embedModel),
		ollama.WithServerURL(host),
	)
	if err != nil {
		return nil, fmt.Errorf("create ollama embed model: %w", err)
	}

	return &Provider{
		chat:      chat,
		embed:     embed,
		model:     chatModel,
		maxTokens: maxTokens,
	}, nil
}

// ModelName returns the generative model identifier.
func (p *Provider) ModelName() string {
	return p.model
}

// Embed generates a vector embedding for the given text.
func (p *Provider) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := p.embed.CreateEmbedding(ctx, []string{text})
	if err != nil {
		return nil, fmt.Errorf("embed: %w", err)
	}
	if len(vectors) == 0 {
		return nil, port.ErrEmptyEmbedding
	}
	return vectors[0], nil
}

// EmbedBatch generates embeddings for multiple texts in one call.
func (p *Provider) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vectors, err := p.embed.CreateEmbedding(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed batch: %w", err)
	}
	if len(vectors) != len(texts) {
		return nil, port.ErrEmptyEmbedding
	}
	return vectors, nil
}

// Generate sends a complete prompt and returns the model's text output.
func (p *Provider) Generate(ctx context.Context, prompt string) (string, error) {
	response, err := llms.GenerateFromSinglePrompt(ctx, p.chat, prompt,
		llms.WithTemperature(p.temperature),
		llms.WithMaxTokens(p.maxTokens),
	)
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}
	return response, nil
}
