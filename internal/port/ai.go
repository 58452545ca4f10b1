package port

import "context"

// TextEmbedder abstracts a pretrained text-embedding model behind a narrow
// text -> vector boundary. Implementations can target Ollama, OpenAI, or any
// compatible API. Outputs must be deterministic for a fixed model version,
// fixed-length for a given configuration, and finite (no NaN/Inf).
type TextEmbedder interface {
	// ModelName returns the identifier of the model being used.
	ModelName() string

	// Dimension returns the length of the vectors this embedder produces.
	Dimension() int

	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts in one call.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}
