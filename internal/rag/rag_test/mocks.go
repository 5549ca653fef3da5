package rag_test

import (
	"context"

	"github.com/asunkara/PDFChatAPI/internal/domain/docModel"
)

// MockVectorDB implements vectorDB.DataProcessor
type MockVectorDB struct {
	// Control fields to simulate different behaviors
	OnEnsureCollection func(ctx context.Context) error
	OnUpsertChunks     func(ctx context.Context, chunks []docModel.DocChunk, vectors [][]float32) error
	OnSearch           func(ctx context.Context, docId string, queryVector []float32, limit uint64) ([]docModel.RetrievedMatch, error)
	OnDeleteDocument   func(ctx context.Context, docId string) error
}

func (m *MockVectorDB) EnsureCollection(ctx context.Context) error {
	if m.OnEnsureCollection != nil {
		return m.OnEnsureCollection(ctx)
	}
	return nil
}

func (m *MockVectorDB) UpsertChunks(ctx context.Context, chunks []docModel.DocChunk, vectors [][]float32) error {
	if m.OnUpsertChunks != nil {
		return m.OnUpsertChunks(ctx, chunks, vectors)
	}
	return nil
}

func (m *MockVectorDB) Search(ctx context.Context, docId string, v []float32, limit uint64) ([]docModel.RetrievedMatch, error) {
	if m.OnSearch != nil {
		return m.OnSearch(ctx, docId, v, limit)
	}
	return []docModel.RetrievedMatch{{PDFName: "default.pdf", PageNum: 1, Seq: 1, Text: "default context", Score: 0.9}}, nil
}

func (m *MockVectorDB) DeleteDocument(ctx context.Context, docId string) error {
	if m.OnDeleteDocument != nil {
		return m.OnDeleteDocument(ctx, docId)
	}
	return nil
}

type MockEmbedder struct {
	OnGetEmbedding   func(ctx context.Context, query string) ([]float32, error)
	OnBatchEmbedding func(ctx context.Context, chunks []string) ([][]float32, error)
}

func (m *MockEmbedder) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	if m.OnGetEmbedding != nil {
		return m.OnGetEmbedding(ctx, query)
	}
	return []float32{0.1}, nil
}

func (m *MockEmbedder) BatchEmbedding(ctx context.Context, chunks []string) ([][]float32, error) {
	if m.OnBatchEmbedding != nil {
		return m.OnBatchEmbedding(ctx, chunks)
	}
	// Return dummy vectors matching chunk count
	return make([][]float32, len(chunks)), nil
}

// MockLLM implements llm.Provider
type MockLLM struct {
	OnGenerate func(ctx context.Context, prompt string) (string, error)
}

func (m *MockLLM) Generate(ctx context.Context, prompt string) (string, error) {
	if m.OnGenerate != nil {
		return m.OnGenerate(ctx, prompt)
	}
	return "mocked llm response", nil
}
