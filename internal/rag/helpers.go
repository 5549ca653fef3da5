package rag

import (
	"context"
	"time"

	"github.com/asunkara/PDFChatAPI/internal/config"
	"github.com/asunkara/PDFChatAPI/internal/domain/docModel"
	"github.com/asunkara/PDFChatAPI/internal/metrics"
)

func (s *service) executeEmbeddingStep(ctx context.Context, question string) ([]float32, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("embedding", time.Since(start)) }()

	return s.embedder.GetEmbedding(ctx, question)
}

func (s *service) executeRetrievalStep(ctx context.Context, docId string, questionVector []float32) ([]docModel.RetrievedMatch, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("vector_search", time.Since(start)) }()

	k := ClampTopK(config.TopKResults)
	return s.vectorDB.Search(ctx, docId, questionVector, uint64(k))
}

func (s *service) executeGenerationStep(ctx context.Context, question string, contextBlob string) (string, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("llm_generation", time.Since(start)) }()

	return s.llmProvider.Generate(ctx, BuildPrompt(question, contextBlob))
}
