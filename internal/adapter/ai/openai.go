package ai

import (
	"context"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIConfig holds the configuration for the OpenAI embedding API.
type OpenAIConfig struct {
	APIKey    string
	BaseURL   string // empty = api.openai.com
	Model     string // e.g. text-embedding-3-large
	Dimension int    // target vector length
	Timeout   time.Duration
}

// OpenAIEmbedder implements port.TextEmbedder using the OpenAI embeddings API
// (or any compatible endpoint).
type OpenAIEmbedder struct {
	client    *openai.Client
	model     string
	dimension int
}

// NewOpenAIEmbedder creates a new OpenAI-backed text embedder.
func NewOpenAIEmbedder(cfg OpenAIConfig) *OpenAIEmbedder {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	if cfg.Timeout > 0 {
		clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}

	model := cfg.Model
	if model == "" {
		model = "text-embedding-3-small"
	}

	return &OpenAIEmbedder{
		client:    openai.NewClientWithConfig(clientCfg),
		model:     model,
		dimension: cfg.Dimension,
	}
}

// ModelName returns the embedding model identifier.
func (e *OpenAIEmbedder) ModelName() string {
	return e.model
}

// Dimension returns the configured output vector length.
func (e *OpenAIEmbedder) Dimension() int {
	return e.dimension
}

// Embed generates a vector embedding for the given text.
func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch generates embeddings for multiple texts in one call.
func (e *OpenAIEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: texts,
		Model: openai.EmbeddingModel(e.model),
	})
	if err != nil {
		return nil, fmt.Errorf("openai embed: %w", err)
	}

	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("openai embed: expected %d embeddings, got %d", len(texts), len(resp.Data))
	}

	out := make([][]float32, len(resp.Data))
	for _, data := range resp.Data {
		fitted, err := FitDimension(e.model, data.Embedding, e.dimension)
		if err != nil {
			return nil, err
		}
		out[data.Index] = fitted
	}
	return out, nil
}
