package rag_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/asunkara/PDFChatAPI/internal/config"
	"github.com/asunkara/PDFChatAPI/internal/domain/docModel"
	"github.com/asunkara/PDFChatAPI/internal/rag"
)

func newTestService(t *testing.T, e *MockEmbedder, v *MockVectorDB, l *MockLLM) rag.Service {
	t.Helper()
	service, err := rag.NewService(v, l, e)
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	return service
}

func TestAskQuestion_Scenarios(t *testing.T) {
	tests := []struct {
		name           string
		setupMocks     func(e *MockEmbedder, v *MockVectorDB, l *MockLLM)
		expectedAnswer string
		expectErr      bool
	}{
		{
			name: "Success_Full_Flow",
			setupMocks: func(e *MockEmbedder, v *MockVectorDB, l *MockLLM) {
				l.OnGenerate = func(ctx context.Context, prompt string) (string, error) {
					return "final answer", nil
				}
			},
			expectedAnswer: "final answer",
		},
		{
			name: "Embedding_Failure_Propagates",
			setupMocks: func(e *MockEmbedder, v *MockVectorDB, l *MockLLM) {
				e.OnGetEmbedding = func(ctx context.Context, query string) ([]float32, error) {
					return nil, errors.New("embedding provider down")
				}
			},
			expectErr: true,
		},
		{
			name: "Search_Failure_Propagates",
			setupMocks: func(e *MockEmbedder, v *MockVectorDB, l *MockLLM) {
				v.OnSearch = func(ctx context.Context, docId string, qv []float32, limit uint64) ([]docModel.RetrievedMatch, error) {
					return nil, errors.New("vector store unreachable")
				}
			},
			expectErr: true,
		},
		{
			name: "Generation_Failure_Propagates",
			setupMocks: func(e *MockEmbedder, v *MockVectorDB, l *MockLLM) {
				l.OnGenerate = func(ctx context.Context, prompt string) (string, error) {
					return "", errors.New("model call failed")
				}
			},
			expectErr: true,
		},
		{
			name: "Empty_Output_Falls_Back",
			setupMocks: func(e *MockEmbedder, v *MockVectorDB, l *MockLLM) {
				l.OnGenerate = func(ctx context.Context, prompt string) (string, error) {
					return "   \n", nil
				}
			},
			expectedAnswer: config.FallbackAnswer,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e, v, l := &MockEmbedder{}, &MockVectorDB{}, &MockLLM{}
			tc.setupMocks(e, v, l)
			service := newTestService(t, e, v, l)

			answer, err := service.AskQuestion(context.Background(), "doc-1", "what is chapter 2 about?")
			if tc.expectErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if answer.Text != tc.expectedAnswer {
				t.Errorf("answer = %q, want %q", answer.Text, tc.expectedAnswer)
			}
		})
	}
}

func TestAskQuestion_RetrievalDepthIsClamped(t *testing.T) {
	e, v, l := &MockEmbedder{}, &MockVectorDB{}, &MockLLM{}

	var gotLimit uint64
	v.OnSearch = func(ctx context.Context, docId string, qv []float32, limit uint64) ([]docModel.RetrievedMatch, error) {
		gotLimit = limit
		return nil, nil
	}

	service := newTestService(t, e, v, l)
	if _, err := service.AskQuestion(context.Background(), "doc-1", "q"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotLimit < uint64(config.MinTopK) || gotLimit > uint64(config.MaxTopK) {
		t.Errorf("search limit %d outside [%d, %d]", gotLimit, config.MinTopK, config.MaxTopK)
	}
}

func TestAskQuestion_PromptContainsRetrievedContext(t *testing.T) {
	e, v, l := &MockEmbedder{}, &MockVectorDB{}, &MockLLM{}

	v.OnSearch = func(ctx context.Context, docId string, qv []float32, limit uint64) ([]docModel.RetrievedMatch, error) {
		return []docModel.RetrievedMatch{
			{PDFName: "report.pdf", PageNum: 3, Seq: 7, Text: "Revenue grew 12% in Q3.", Score: 0.91},
		}, nil
	}

	var gotPrompt string
	l.OnGenerate = func(ctx context.Context, prompt string) (string, error) {
		gotPrompt = prompt
		return "ok", nil
	}

	service := newTestService(t, e, v, l)
	if _, err := service.AskQuestion(context.Background(), "doc-1", "how did revenue do?"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(gotPrompt, "[report.pdf p.3] Revenue grew 12% in Q3.") {
		t.Errorf("prompt missing cited snippet, got:\n%s", gotPrompt)
	}
	if !strings.Contains(gotPrompt, config.NoAnswerPhrase) {
		t.Error("prompt missing the no-answer instruction")
	}
	if !strings.Contains(gotPrompt, "how did revenue do?") {
		t.Error("prompt missing the question")
	}
}

func TestBuildContext_BudgetCutoff(t *testing.T) {
	a := docModel.RetrievedMatch{PDFName: "a.pdf", PageNum: 1, Text: strings.Repeat("a", 500)}
	b := docModel.RetrievedMatch{PDFName: "b.pdf", PageNum: 2, Text: strings.Repeat("b", 9000)}
	c := docModel.RetrievedMatch{PDFName: "c.pdf", PageNum: 3, Text: strings.Repeat("c", 10)}

	// b overflows the budget and ends accumulation, so c is dropped even
	// though it would fit
	got := rag.BuildContext([]docModel.RetrievedMatch{a, b, c}, config.MaxContextChars)

	if !strings.Contains(got, "[a.pdf p.1]") {
		t.Error("first snippet missing")
	}
	if strings.Contains(got, "[b.pdf p.2]") {
		t.Error("oversized snippet should have been cut")
	}
	if strings.Contains(got, "[c.pdf p.3]") {
		t.Error("accumulation must stop at the first overflow")
	}
}

func TestBuildContext_Empty(t *testing.T) {
	if got := rag.BuildContext(nil, config.MaxContextChars); got != "" {
		t.Errorf("empty matches should yield empty context, got %q", got)
	}
	if got := rag.BuildContext([]docModel.RetrievedMatch{}, 0); got != "" {
		t.Errorf("zero budget should yield empty context, got %q", got)
	}
}

func TestClampTopK(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{100, config.MaxTopK},
		{0, config.MinTopK},
		{-3, config.MinTopK},
		{8, 8},
		{config.MaxTopK, config.MaxTopK},
	}
	for _, tc := range tests {
		if got := rag.ClampTopK(tc.in); got != tc.want {
			t.Errorf("ClampTopK(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

// End to end through the service: a small synthetic document goes in, and the
// question flow answers from its stored chunks.
func TestIndexThenAsk_RoundTrip(t *testing.T) {
	e, v, l := &MockEmbedder{}, &MockVectorDB{}, &MockLLM{}

	var stored []docModel.DocChunk
	v.OnUpsertChunks = func(ctx context.Context, chunks []docModel.DocChunk, vectors [][]float32) error {
		if len(chunks) != len(vectors) {
			t.Fatalf("chunks/vectors misaligned: %d vs %d", len(chunks), len(vectors))
		}
		stored = append(stored, chunks...)
		return nil
	}
	v.OnSearch = func(ctx context.Context, docId string, qv []float32, limit uint64) ([]docModel.RetrievedMatch, error) {
		var matches []docModel.RetrievedMatch
		for _, c := range stored {
			if c.Doc.Id != docId {
				continue
			}
			matches = append(matches, docModel.RetrievedMatch{
				PDFName: c.Doc.Name, PageNum: c.PageNum, Seq: c.Seq, Text: c.Text, Score: 0.8,
			})
			if uint64(len(matches)) == limit {
				break
			}
		}
		return matches, nil
	}

	var gotPrompt string
	l.OnGenerate = func(ctx context.Context, prompt string) (string, error) {
		gotPrompt = prompt
		return "grounded answer", nil
	}

	service := newTestService(t, e, v, l)
	doc := docModel.Document{Id: "doc-rt", Name: "manual.pdf"}
	pages := []docModel.Page{
		{Number: 1, Text: strings.Repeat("the quick brown fox jumps over the lazy dog ", 60)}, // ~2640 chars
		{Number: 2, Text: ""}, // scanned page, no text layer
	}

	count, err := service.IndexDocument(context.Background(), doc, pages)
	if err != nil {
		t.Fatalf("IndexDocument failed: %v", err)
	}
	if count != len(stored) {
		t.Errorf("reported %d chunks, stored %d", count, len(stored))
	}
	// 2640 chars at window 1200 / stride 1000 gives three windows
	if count != 3 {
		t.Errorf("chunk count = %d, want 3", count)
	}
	for i, c := range stored {
		if c.PageNum != 1 {
			t.Errorf("chunk %d attributed to page %d, want 1", i, c.PageNum)
		}
		if c.Seq != i+1 {
			t.Errorf("chunk %d has Seq %d, want %d", i, c.Seq, i+1)
		}
	}

	answer, err := service.AskQuestion(context.Background(), "doc-rt", "what does the fox do?")
	if err != nil {
		t.Fatalf("AskQuestion failed: %v", err)
	}
	if answer.Text != "grounded answer" {
		t.Errorf("answer = %q", answer.Text)
	}
	if !strings.Contains(gotPrompt, "[manual.pdf p.1]") {
		t.Error("prompt missing citation tag for the indexed page")
	}
	if len(answer.Sources) == 0 {
		t.Error("answer carries no sources")
	}
}
