package sessionModel

import (
	"context"
	"time"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of a session's conversation. The sequence is
// append-only and cleared whenever the active document changes.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Session is the per-caller state: which document is active plus display
// metadata. Conversation history is stored alongside but fetched separately.
type Session struct {
	Id          string    `json:"id"`
	DocId       string    `json:"doc_id,omitempty"`
	PDFName     string    `json:"pdf_name,omitempty"`
	ChunkCount  int       `json:"chunk_count"`
	CreatedTime time.Time `json:"created_time"`
}

func (s Session) HasDocument() bool {
	return s.DocId != ""
}

type SessionStore interface {
	GetSession(ctx context.Context, id string) (Session, bool)
	SaveSession(ctx context.Context, session Session) error
	AppendMessage(ctx context.Context, sessionId string, message Message) error
	GetHistory(ctx context.Context, sessionId string) ([]Message, error)
	// ClearSession drops the session record and its conversation history.
	ClearSession(ctx context.Context, sessionId string) error
}
