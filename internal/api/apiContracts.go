package api

// requests---------------------

type AskRequest struct {
	Question string `json:"question" validate:"required" example:"What does chapter 2 say about indexing?"`
}

// responses--------------------

type UploadResponse struct {
	SessionId  string `json:"session_id"`
	DocId      string `json:"doc_id"`
	Name       string `json:"pdf_name"`
	ChunkCount int    `json:"chunk_count"`
	// Note is set when the upload produced nothing indexable (scanned PDFs)
	Note string `json:"note,omitempty"`
}

type Source struct {
	PDFName string  `json:"pdf_name"`
	Page    int     `json:"page"`
	Score   float32 `json:"score"`
}

type AskResponse struct {
	SessionId string   `json:"session_id"`
	Question  string   `json:"question"`
	Answer    string   `json:"answer"`
	Sources   []Source `json:"sources,omitempty"`
}

type Message struct {
	Role    string `json:"role" example:"user"`
	Content string `json:"content"`
}

type SessionResponse struct {
	SessionId  string    `json:"session_id"`
	DocId      string    `json:"doc_id,omitempty"`
	PDFName    string    `json:"pdf_name,omitempty"`
	ChunkCount int       `json:"chunk_count"`
	History    []Message `json:"history"`
}

type ErrorResponse struct {
	Code    int    `json:"code" example:"400"`
	Message string `json:"message" example:"question is required"`
}
