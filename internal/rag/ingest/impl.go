package ingest

import (
	"context"
	"fmt"
	"strings"

	"github.com/asunkara/PDFChatAPI/internal/adapter/utils"
	"github.com/asunkara/PDFChatAPI/internal/config"
	"github.com/asunkara/PDFChatAPI/internal/domain/docModel"
	"github.com/asunkara/PDFChatAPI/internal/rag/chunker"
	"github.com/asunkara/PDFChatAPI/internal/rag/embedding"
	"github.com/asunkara/PDFChatAPI/internal/rag/vectorDB"
)

const embeddingBatchSize = 100

// PrepareChunks expands pages into overlapping windows and assigns Seq 1..N
// in page-then-offset order, so the persisted ordering is reproducible no
// matter how the later embedding calls interleave.
//
// Windows whose trimmed length falls below MinChunkChars are dropped: page
// tails and whitespace runs carry no retrievable signal and would only dilute
// similarity scores.
func PrepareChunks(pages []docModel.Page, doc docModel.Document, splitter *chunker.Splitter) []docModel.DocChunk {
	var allChunks []docModel.DocChunk

	seq := 1
	for _, page := range pages {
		for _, text := range splitter.Split(page.Text) {
			if len(strings.TrimSpace(text)) < config.MinChunkChars {
				continue
			}
			allChunks = append(allChunks, docModel.DocChunk{
				Doc:     doc,
				PointId: utils.GetNewUUID(),
				Seq:     seq,
				Text:    text,
				PageNum: page.Number,
			})
			seq++
		}
	}

	return allChunks
}

// BatchIngest embeds and upserts chunks in batches of embeddingBatchSize.
// Batches run sequentially; the first failure aborts the whole run so no
// partially indexed document is ever reported as ready.
func BatchIngest(ctx context.Context, chunks []docModel.DocChunk, db vectorDB.DataProcessor, embedder embedding.Embedder) error {
	for i := 0; i < len(chunks); i += embeddingBatchSize {
		end := i + embeddingBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		currentBatch := chunks[i:end]

		texts := make([]string, 0, len(currentBatch))
		for _, c := range currentBatch {
			texts = append(texts, c.Text)
		}

		logger.Debug("Starting embedding call", "batch start", i, "batch length", len(currentBatch))
		vectors, err := embedder.BatchEmbedding(ctx, texts)
		if err != nil {
			return fmt.Errorf("embedding batch failed: %w", err)
		}

		if err = db.UpsertChunks(ctx, currentBatch, vectors); err != nil {
			return fmt.Errorf("storing chunk batch failed: %w", err)
		}
	}

	return nil
}
