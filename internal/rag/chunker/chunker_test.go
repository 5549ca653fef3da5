package chunker

import (
	"strings"
	"testing"
)

func TestNewSplitter_Validation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{ChunkSize: 1200, Overlap: 200}, false},
		{"zero overlap", Config{ChunkSize: 10, Overlap: 0}, false},
		{"overlap equals size", Config{ChunkSize: 200, Overlap: 200}, true},
		{"overlap above size", Config{ChunkSize: 100, Overlap: 150}, true},
		{"zero size", Config{ChunkSize: 0, Overlap: 0}, true},
		{"negative overlap", Config{ChunkSize: 100, Overlap: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSplitter(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewSplitter(%+v) error = %v, wantErr %v", tt.cfg, err, tt.wantErr)
			}
		})
	}
}

func TestSplit_EmptyInput(t *testing.T) {
	s, _ := NewSplitter(Config{ChunkSize: 1200, Overlap: 200})

	if got := s.Split(""); len(got) != 0 {
		t.Errorf("Split(\"\") = %v, want no chunks", got)
	}
	if got := s.Split("   \n\t "); len(got) != 0 {
		t.Errorf("Split(whitespace) = %v, want no chunks", got)
	}
}

func TestSplit_SingleWindow(t *testing.T) {
	s, _ := NewSplitter(Config{ChunkSize: 100, Overlap: 20})

	got := s.Split("  short text  ")
	if len(got) != 1 || got[0] != "short text" {
		t.Errorf("Split = %v, want one trimmed chunk", got)
	}
}

func TestSplit_ForwardProgress(t *testing.T) {
	s, _ := NewSplitter(Config{ChunkSize: 10, Overlap: 5})
	text := strings.Repeat("abcde", 4) + "xyz" // length 23

	chunks := s.Split(text)

	if len(chunks) == 0 || len(chunks) > len(text) {
		t.Fatalf("got %d chunks for %d characters", len(chunks), len(text))
	}
	// start offsets must strictly increase: chunk i starts at i*(size-overlap)
	prevStart := -1
	start := 0
	for i, c := range chunks {
		if start <= prevStart {
			t.Fatalf("chunk %d start %d did not advance past %d", i, start, prevStart)
		}
		if text[start:start+len(c)] != c {
			t.Errorf("chunk %d = %q, not found at offset %d", i, c, start)
		}
		prevStart = start
		start += s.ChunkSize() - s.Overlap()
	}
	last := chunks[len(chunks)-1]
	if !strings.HasSuffix(text, last) {
		t.Errorf("last chunk %q is not a suffix of the input", last)
	}
}

func TestSplit_ReassemblesInput(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		text string
	}{
		{"default geometry", Config{ChunkSize: 1200, Overlap: 200}, strings.Repeat("The quick brown fox jumps over the lazy dog. ", 120)},
		{"small windows", Config{ChunkSize: 10, Overlap: 3}, "a somewhat longer line of text to be windowed"},
		{"exact multiple", Config{ChunkSize: 8, Overlap: 0}, "0123456789abcdef"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSplitter(tt.cfg)
			if err != nil {
				t.Fatalf("NewSplitter: %v", err)
			}
			chunks := s.Split(tt.text)

			var rebuilt strings.Builder
			for i, c := range chunks {
				if i == 0 {
					rebuilt.WriteString(c)
					continue
				}
				if len(c) < tt.cfg.Overlap {
					t.Fatalf("chunk %d shorter than overlap: %q", i, c)
				}
				rebuilt.WriteString(c[tt.cfg.Overlap:])
			}

			want := strings.TrimSpace(tt.text)
			if rebuilt.String() != want {
				t.Errorf("reassembled text does not match trimmed input\ngot:  %q\nwant: %q", rebuilt.String(), want)
			}
		})
	}
}

func TestSplit_WindowBounds(t *testing.T) {
	s, _ := NewSplitter(Config{ChunkSize: 50, Overlap: 10})
	text := strings.Repeat("x", 137)

	chunks := s.Split(text)
	for i, c := range chunks {
		if len(c) > 50 {
			t.Errorf("chunk %d length %d exceeds chunk size", i, len(c))
		}
		if i < len(chunks)-1 && len(c) != 50 {
			t.Errorf("non-final chunk %d length %d, want full window", i, len(c))
		}
	}
}
