package vectorDB

import (
	"context"

	"github.com/asunkara/PDFChatAPI/internal/domain/docModel"
)

// DataProcessor is the narrow contract the RAG service needs from a vector
// store. All operations are scoped to one document id; no cross-document
// query exists anywhere in the system.
type DataProcessor interface {
	// EnsureCollection makes the chunk collection exist with the configured
	// dimensionality and cosine distance. Idempotent.
	EnsureCollection(ctx context.Context) error

	// UpsertChunks writes chunks and their embeddings as one batch. The two
	// slices must be index-aligned.
	UpsertChunks(ctx context.Context, chunks []docModel.DocChunk, vectors [][]float32) error

	// Search returns the top-limit chunks of docId by cosine similarity to
	// queryVector, descending. An unindexed docId yields an empty slice.
	Search(ctx context.Context, docId string, queryVector []float32, limit uint64) ([]docModel.RetrievedMatch, error)

	// DeleteDocument removes every chunk stored under docId.
	DeleteDocument(ctx context.Context, docId string) error
}
