package rag

import (
	"context"
	"strings"
	"time"

	"github.com/asunkara/PDFChatAPI/internal/config"
	"github.com/asunkara/PDFChatAPI/internal/domain/docModel"
	"github.com/asunkara/PDFChatAPI/internal/metrics"
	"github.com/asunkara/PDFChatAPI/internal/rag/chunker"
	"github.com/asunkara/PDFChatAPI/internal/rag/embedding"
	"github.com/asunkara/PDFChatAPI/internal/rag/ingest"
	"github.com/asunkara/PDFChatAPI/internal/rag/llm"
	"github.com/asunkara/PDFChatAPI/internal/rag/vectorDB"
	"github.com/asunkara/PDFChatAPI/pkg/logger_i"
)

// Service is the public contract the session controller works against. It
// hides which vector store and which model provider sit underneath, so tests
// swap in mocks without touching the orchestration.
type Service interface {
	// IndexDocument chunks, embeds and stores the pages under doc.Id and
	// returns the stored chunk count. Zero chunks means nothing indexable.
	IndexDocument(ctx context.Context, doc docModel.Document, pages []docModel.Page) (int, error)

	// AskQuestion retrieves the most similar chunks of docId and generates a
	// grounded answer. Retrieval and generation failures propagate; an empty
	// model output is replaced by the fixed fallback answer.
	AskQuestion(ctx context.Context, docId string, question string) (Answer, error)

	// DeleteDocument removes all chunks stored under docId.
	DeleteDocument(ctx context.Context, docId string) error
}

type Answer struct {
	Text    string
	Sources []docModel.RetrievedMatch
}

type service struct {
	vectorDB    vectorDB.DataProcessor
	llmProvider llm.Provider
	embedder    embedding.Embedder
	splitter    *chunker.Splitter
	logger      *logger_i.Logger
}

// NewService wires the service with the fixed chunk geometry. The splitter
// constructor rejects an overlap >= chunk size, so a bad pair of constants
// fails at startup instead of looping at index time.
func NewService(vector vectorDB.DataProcessor, llm llm.Provider, em embedding.Embedder) (Service, error) {
	splitter, err := chunker.NewSplitter(chunker.Config{
		ChunkSize: config.ChunkSize,
		Overlap:   config.ChunkOverlap,
	})
	if err != nil {
		return nil, err
	}
	return &service{
		vectorDB:    vector,
		llmProvider: llm,
		embedder:    em,
		splitter:    splitter,
		logger:      logger_i.NewLogger("RAG Service"),
	}, nil
}

func (s *service) IndexDocument(ctx context.Context, doc docModel.Document, pages []docModel.Page) (int, error) {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "docId", doc.Id)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("document_indexing", time.Since(start)) }()

	count, err := ingest.IndexPages(ctx, doc, pages, s.splitter, s.embedder, s.vectorDB)
	if err != nil {
		log.Error("Indexing failed", "error", err)
		return 0, err
	}

	log.Info("Indexed document", "chunks", count)
	metrics.CountIndexedChunks(count)
	return count, nil
}

func (s *service) AskQuestion(ctx context.Context, docId string, question string) (Answer, error) {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "docId", docId)

	questionVector, err := s.executeEmbeddingStep(ctx, question)
	if err != nil {
		log.Error("Question embedding failed", "error", err)
		return Answer{}, err
	}

	matches, err := s.executeRetrievalStep(ctx, docId, questionVector)
	if err != nil {
		log.Error("Vector search failed", "error", err)
		return Answer{}, err
	}

	contextBlob := BuildContext(matches, config.MaxContextChars)
	log.Debug("Built context", "matches", len(matches), "context chars", len(contextBlob))

	answerText, err := s.executeGenerationStep(ctx, question, contextBlob)
	if err != nil {
		log.Error("Generation failed", "error", err)
		return Answer{}, err
	}

	if strings.TrimSpace(answerText) == "" {
		answerText = config.FallbackAnswer
	}

	metrics.CountAnsweredQuestion()
	return Answer{Text: answerText, Sources: matches}, nil
}

func (s *service) DeleteDocument(ctx context.Context, docId string) error {
	return s.vectorDB.DeleteDocument(ctx, docId)
}
