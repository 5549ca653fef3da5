package ingest

import (
	"context"
	"fmt"

	"github.com/asunkara/PDFChatAPI/internal/domain/docModel"
	"github.com/asunkara/PDFChatAPI/internal/rag/chunker"
	"github.com/asunkara/PDFChatAPI/internal/rag/embedding"
	"github.com/asunkara/PDFChatAPI/internal/rag/vectorDB"
	"github.com/asunkara/PDFChatAPI/pkg/logger_i"
)

var logger = logger_i.NewLogger("Document Ingestion")

// IndexPages chunks the extracted pages and stores chunk+embedding rows under
// doc.Id. Returns the number of chunks stored.
//
// Zero surviving chunks is a no-op, not an error: an image-only or empty PDF
// produces nothing to index and no external call is made. Any embedding or
// storage failure aborts the run and surfaces to the caller.
func IndexPages(ctx context.Context, doc docModel.Document, pages []docModel.Page, splitter *chunker.Splitter, e embedding.Embedder, db vectorDB.DataProcessor) (int, error) {
	chunks := PrepareChunks(pages, doc, splitter)
	logger.Debug("Processing document", "docId", doc.Id, "pages", len(pages), "chunks", len(chunks))

	if len(chunks) == 0 {
		return 0, nil
	}

	if err := db.EnsureCollection(ctx); err != nil {
		return 0, fmt.Errorf("ensuring chunk collection: %w", err)
	}

	if err := BatchIngest(ctx, chunks, db, e); err != nil {
		return 0, err
	}
	return len(chunks), nil
}
