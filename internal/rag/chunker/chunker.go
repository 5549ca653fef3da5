package chunker

import (
	"fmt"
	"strings"
)

// Splitter cuts text into fixed-size character windows where consecutive
// windows share Overlap characters. Offsets are byte-based, matching the
// indexer's 40-character floor which is also byte-based.
type Splitter struct {
	chunkSize int
	overlap   int
}

type Config struct {
	ChunkSize int
	Overlap   int
}

// NewSplitter validates the window geometry up front. Overlap >= ChunkSize
// would stall the sliding window, so it is a construction error rather than
// something the loop has to defend against.
func NewSplitter(cfg Config) (*Splitter, error) {
	if cfg.ChunkSize <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", cfg.ChunkSize)
	}
	if cfg.Overlap < 0 {
		return nil, fmt.Errorf("overlap must not be negative, got %d", cfg.Overlap)
	}
	if cfg.Overlap >= cfg.ChunkSize {
		return nil, fmt.Errorf("overlap %d must be smaller than chunk size %d", cfg.Overlap, cfg.ChunkSize)
	}
	return &Splitter{chunkSize: cfg.ChunkSize, overlap: cfg.Overlap}, nil
}

// Split returns the overlapping windows of text in offset order. Whitespace
// is trimmed first; whitespace-only input yields no chunks. Each iteration
// advances start by at least chunkSize-overlap, so the loop always terminates.
func (s *Splitter) Split(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var chunks []string
	start := 0
	for start < len(text) {
		end := start + s.chunkSize
		if end > len(text) {
			end = len(text)
		}
		chunks = append(chunks, text[start:end])
		if end == len(text) {
			break
		}
		start = end - s.overlap
		if start < 0 {
			start = 0
		}
	}
	return chunks
}

func (s *Splitter) ChunkSize() int { return s.chunkSize }
func (s *Splitter) Overlap() int   { return s.overlap }
