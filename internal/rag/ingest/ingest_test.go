package ingest_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/asunkara/PDFChatAPI/internal/domain/docModel"
	"github.com/asunkara/PDFChatAPI/internal/rag/chunker"
	"github.com/asunkara/PDFChatAPI/internal/rag/ingest"
)

type fakeDB struct {
	OnEnsureCollection func(ctx context.Context) error
	OnUpsertChunks     func(ctx context.Context, chunks []docModel.DocChunk, vectors [][]float32) error
}

func (f *fakeDB) EnsureCollection(ctx context.Context) error {
	if f.OnEnsureCollection != nil {
		return f.OnEnsureCollection(ctx)
	}
	return nil
}

func (f *fakeDB) UpsertChunks(ctx context.Context, chunks []docModel.DocChunk, vectors [][]float32) error {
	if f.OnUpsertChunks != nil {
		return f.OnUpsertChunks(ctx, chunks, vectors)
	}
	return nil
}

func (f *fakeDB) Search(ctx context.Context, docId string, v []float32, limit uint64) ([]docModel.RetrievedMatch, error) {
	return nil, nil
}

func (f *fakeDB) DeleteDocument(ctx context.Context, docId string) error {
	return nil
}

type fakeEmbedder struct {
	OnBatchEmbedding func(ctx context.Context, chunks []string) ([][]float32, error)
}

func (f *fakeEmbedder) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	return []float32{0.1}, nil
}

func (f *fakeEmbedder) BatchEmbedding(ctx context.Context, chunks []string) ([][]float32, error) {
	if f.OnBatchEmbedding != nil {
		return f.OnBatchEmbedding(ctx, chunks)
	}
	return make([][]float32, len(chunks)), nil
}

func newSplitter(t *testing.T, size, overlap int) *chunker.Splitter {
	t.Helper()
	s, err := chunker.NewSplitter(chunker.Config{ChunkSize: size, Overlap: overlap})
	if err != nil {
		t.Fatalf("NewSplitter failed: %v", err)
	}
	return s
}

func TestPrepareChunks_FiltersShortWindows(t *testing.T) {
	splitter := newSplitter(t, 100, 10)
	doc := docModel.Document{Id: "d1", Name: "a.pdf"}

	pages := []docModel.Page{
		{Number: 1, Text: strings.Repeat("x", 80)}, // one window, passes
		{Number: 2, Text: "too short"},             // below the 40 char floor
	}

	chunks := ingest.PrepareChunks(pages, doc, splitter)
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	if chunks[0].PageNum != 1 {
		t.Errorf("chunk attributed to page %d, want 1", chunks[0].PageNum)
	}
}

func TestPrepareChunks_SeqOrderedAcrossPages(t *testing.T) {
	splitter := newSplitter(t, 60, 10)
	doc := docModel.Document{Id: "d2", Name: "b.pdf"}

	pages := []docModel.Page{
		{Number: 1, Text: strings.Repeat("a", 150)},
		{Number: 2, Text: strings.Repeat("b", 150)},
	}

	chunks := ingest.PrepareChunks(pages, doc, splitter)
	if len(chunks) == 0 {
		t.Fatal("no chunks produced")
	}
	lastPage := 0
	for i, c := range chunks {
		if c.Seq != i+1 {
			t.Errorf("chunk %d has Seq %d, want %d", i, c.Seq, i+1)
		}
		if c.PageNum < lastPage {
			t.Errorf("chunk %d breaks page order: page %d after %d", i, c.PageNum, lastPage)
		}
		lastPage = c.PageNum
		if c.PointId == "" {
			t.Errorf("chunk %d has no point id", i)
		}
		if c.Doc.Id != doc.Id {
			t.Errorf("chunk %d carries doc %q, want %q", i, c.Doc.Id, doc.Id)
		}
	}
}

func TestIndexPages_EmptyDocumentIsNoOp(t *testing.T) {
	splitter := newSplitter(t, 100, 10)
	doc := docModel.Document{Id: "d3", Name: "scanned.pdf"}

	db := &fakeDB{
		OnEnsureCollection: func(ctx context.Context) error {
			t.Error("no external call expected for an empty document")
			return nil
		},
	}
	e := &fakeEmbedder{
		OnBatchEmbedding: func(ctx context.Context, chunks []string) ([][]float32, error) {
			t.Error("no embedding call expected for an empty document")
			return nil, nil
		},
	}

	count, err := ingest.IndexPages(context.Background(), doc, []docModel.Page{{Number: 1, Text: "  "}}, splitter, e, db)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 0 {
		t.Errorf("count = %d, want 0", count)
	}
}

func TestBatchIngest_SplitsIntoBatches(t *testing.T) {
	chunks := make([]docModel.DocChunk, 150)
	for i := range chunks {
		chunks[i] = docModel.DocChunk{Seq: i + 1, Text: "chunk"}
	}

	var batchSizes []int
	e := &fakeEmbedder{
		OnBatchEmbedding: func(ctx context.Context, texts []string) ([][]float32, error) {
			batchSizes = append(batchSizes, len(texts))
			return make([][]float32, len(texts)), nil
		},
	}
	var upserts int
	db := &fakeDB{
		OnUpsertChunks: func(ctx context.Context, chunks []docModel.DocChunk, vectors [][]float32) error {
			upserts++
			if len(chunks) != len(vectors) {
				t.Errorf("misaligned upsert: %d chunks, %d vectors", len(chunks), len(vectors))
			}
			return nil
		},
	}

	if err := ingest.BatchIngest(context.Background(), chunks, db, e); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(batchSizes) != 2 || batchSizes[0] != 100 || batchSizes[1] != 50 {
		t.Errorf("batch sizes = %v, want [100 50]", batchSizes)
	}
	if upserts != 2 {
		t.Errorf("upserts = %d, want 2", upserts)
	}
}

func TestBatchIngest_FirstFailureAborts(t *testing.T) {
	chunks := make([]docModel.DocChunk, 150)
	for i := range chunks {
		chunks[i] = docModel.DocChunk{Seq: i + 1, Text: "chunk"}
	}

	calls := 0
	e := &fakeEmbedder{
		OnBatchEmbedding: func(ctx context.Context, texts []string) ([][]float32, error) {
			calls++
			return nil, errors.New("quota exhausted")
		},
	}
	upserted := false
	db := &fakeDB{
		OnUpsertChunks: func(ctx context.Context, chunks []docModel.DocChunk, vectors [][]float32) error {
			upserted = true
			return nil
		},
	}

	if err := ingest.BatchIngest(context.Background(), chunks, db, e); err == nil {
		t.Fatal("expected error, got nil")
	}
	if calls != 1 {
		t.Errorf("embedding called %d times after failure, want 1", calls)
	}
	if upserted {
		t.Error("nothing should be stored after an embedding failure")
	}
}
