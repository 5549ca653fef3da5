package docModel

import "time"

// Document is the single active upload of a session. A fresh Id is minted on
// every upload and never reused, so stale rows under an old Id can never be
// confused with the current document.
type Document struct {
	Id          string    `json:"doc_id"`
	Name        string    `json:"pdf_name"`
	IndexedAt   time.Time `json:"indexed_at"`
	ContentType DocType   `json:"content_type"`
}

// Page is one page of extracted text. Text may be empty for image-only pages.
type Page struct {
	Number int    `json:"page_number"`
	Text   string `json:"text"`
}

// DocChunk is the unit of embedding and retrieval: one overlapping text
// window cut from a single page.
//
// Seq is assigned 1..N in page order then in-page offset order and is unique
// within the document. PointId is the vector store's point identifier; chunks
// across documents share one collection so Seq alone cannot key them.
type DocChunk struct {
	Doc     Document
	PointId string `json:"chunk_id"`
	Seq     int    `json:"chunk_seq"`
	Text    string `json:"content"`
	PageNum int    `json:"page_num"`
}

// RetrievedMatch is a chunk scored against one question. Ephemeral, never
// persisted. Score is cosine similarity in [-1, 1], higher is more relevant.
type RetrievedMatch struct {
	PDFName string  `json:"pdf_name"`
	PageNum int     `json:"page_num"`
	Seq     int     `json:"chunk_seq"`
	Text    string  `json:"content"`
	Score   float32 `json:"score"`
}

type DocType string

var (
	PDF  DocType = "PDF"
	DOCX DocType = "DOCX"
	ERR  DocType = "ERROR"
)
