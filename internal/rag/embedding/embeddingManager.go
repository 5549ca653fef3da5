package embedding

import "context"

// Embedder produces fixed-dimensionality vectors. The same implementation
// must serve both sides of a document's lifecycle: chunks at index time and
// questions at ask time.
type Embedder interface {
	GetEmbedding(ctx context.Context, query string) ([]float32, error)
	BatchEmbedding(ctx context.Context, chunks []string) ([][]float32, error)
}
