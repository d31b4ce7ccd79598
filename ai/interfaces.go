package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity
// scoring. Implementations must be thread-safe for concurrent use and
// must return L2-normalized vectors of a fixed dimension.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in
	// a batch. The returned slice contains embeddings in the same order as
	// the input texts. Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// ImageEmbedder generates vector embeddings for text and images in one
// shared space, so a query string can be scored directly against a
// thumbnail. Implementations must be thread-safe for concurrent use and
// must return L2-normalized vectors.
type ImageEmbedder interface {
	// EmbedText generates an embedding for text in the image space.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedImage generates an embedding for raw encoded image bytes
	// (JPEG, PNG, WebP). Returns an error if the image cannot be decoded
	// or encoded into a vector.
	EmbedImage(ctx context.Context, image []byte) ([]float32, error)
}
