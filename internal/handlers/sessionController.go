package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/asunkara/PDFChatAPI/internal/adapter/utils"
	"github.com/asunkara/PDFChatAPI/internal/config"
	"github.com/asunkara/PDFChatAPI/internal/domain/docModel"
	"github.com/asunkara/PDFChatAPI/internal/domain/sessionModel"
	"github.com/asunkara/PDFChatAPI/internal/metrics"
	"github.com/asunkara/PDFChatAPI/internal/rag"
	"github.com/asunkara/PDFChatAPI/internal/rag/ingest"
	"github.com/asunkara/PDFChatAPI/pkg/logger_i"
)

// ErrNoActiveDocument marks a question that arrived before any upload; the
// handler turns it into a 409 and no external call is made.
var ErrNoActiveDocument = errors.New("no document uploaded for this session")

// ErrUnsupportedDocument marks an upload with an extension we cannot extract.
var ErrUnsupportedDocument = errors.New("unsupported document type")

const scannedPDFNote = "This PDF looks like a scanned image (no extractable text). Try a text-based PDF."

var (
	controllerInstance *SessionController //private singleton
	once               sync.Once
	logSC              *logger_i.Logger
)

// SessionController owns the upload -> index -> ask -> reset lifecycle of one
// session. One session never runs two operations concurrently and a doc_id is
// written by exactly one session, so id uniqueness is the only isolation
// mechanism needed.
type SessionController struct {
	ragService rag.Service
	sessions   sessionModel.SessionStore
}

func InitSessionController(ragService rag.Service, sessions sessionModel.SessionStore) {
	once.Do(func() {
		controllerInstance = &SessionController{ragService: ragService, sessions: sessions}

		logSC = logger_i.NewLogger("SessionController")
		logRH = logger_i.NewLogger("RequestHandler")
		logSC.Info("Starting session controller")
	})
}

// HandleUpload replaces the session's active document with the uploaded file.
// The old document's chunks are deleted best-effort: a failed delete is
// logged and indexing proceeds, orphaning rows under the old doc_id. That is
// accepted because doc_ids are never reused, so orphans can never surface.
func (c *SessionController) HandleUpload(ctx context.Context, sessionId string, docName string, filePath string) (sessionModel.Session, string, error) {
	log := logSC.With("traceId", ctx.Value(config.TRACE_ID_KEY), "session Id", sessionId)

	docType := ingest.GetDocType(filePath)
	if docType == docModel.ERR {
		return sessionModel.Session{}, "", fmt.Errorf("%w: %s", ErrUnsupportedDocument, docName)
	}

	extractStart := time.Now()
	pages, err := ingest.ExtractPages(filePath, docType)
	metrics.CaptureExecutionMetrics("text_extraction", time.Since(extractStart))
	if err != nil {
		return sessionModel.Session{}, "", fmt.Errorf("extracting %s: %w", docName, err)
	}

	prior, _ := c.sessions.GetSession(ctx, sessionId)
	if prior.HasDocument() {
		if err := c.ragService.DeleteDocument(ctx, prior.DocId); err != nil {
			log.Warn("Could not delete previous document, continuing", "old docId", prior.DocId, "error", err)
		}
	}

	doc := docModel.Document{
		Id:          utils.GetNewUUID(),
		Name:        docName,
		IndexedAt:   time.Now(),
		ContentType: docType,
	}

	note := ""
	count := 0
	if countNonEmptyPages(pages) == 0 {
		note = scannedPDFNote
		log.Warn("Document has no extractable text", "docName", docName)
	} else {
		count, err = c.ragService.IndexDocument(ctx, doc, pages)
		if err != nil {
			return sessionModel.Session{}, "", err
		}
		metrics.CountIndexedDocument()
	}

	// new document, new conversation
	if err := c.sessions.ClearSession(ctx, sessionId); err != nil {
		log.Warn("Could not clear session history", "error", err)
	}
	session := sessionModel.Session{
		Id:          sessionId,
		DocId:       doc.Id,
		PDFName:     doc.Name,
		ChunkCount:  count,
		CreatedTime: time.Now(),
	}
	if err := c.sessions.SaveSession(ctx, session); err != nil {
		return sessionModel.Session{}, "", fmt.Errorf("saving session: %w", err)
	}

	log.Info("Document ready", "docId", doc.Id, "chunks", count)
	return session, note, nil
}

// HandleAsk answers one question against the session's active document.
func (c *SessionController) HandleAsk(ctx context.Context, sessionId string, question string) (rag.Answer, error) {
	log := logSC.With("traceId", ctx.Value(config.TRACE_ID_KEY), "session Id", sessionId)

	session, found := c.sessions.GetSession(ctx, sessionId)
	if !found || !session.HasDocument() {
		return rag.Answer{}, ErrNoActiveDocument
	}

	answer, err := c.ragService.AskQuestion(ctx, session.DocId, question)
	if err != nil {
		return rag.Answer{}, err
	}

	// history failures should not lose an already generated answer
	if err := c.sessions.AppendMessage(ctx, sessionId, sessionModel.Message{Role: sessionModel.RoleUser, Content: question}); err != nil {
		log.Error("Failed to save user message", "error", err)
	}
	if err := c.sessions.AppendMessage(ctx, sessionId, sessionModel.Message{Role: sessionModel.RoleAssistant, Content: answer.Text}); err != nil {
		log.Error("Failed to save assistant message", "error", err)
	}

	return answer, nil
}

// HandleReset clears the session and best-effort deletes its chunks.
func (c *SessionController) HandleReset(ctx context.Context, sessionId string) error {
	log := logSC.With("traceId", ctx.Value(config.TRACE_ID_KEY), "session Id", sessionId)

	session, found := c.sessions.GetSession(ctx, sessionId)
	if found && session.HasDocument() {
		if err := c.ragService.DeleteDocument(ctx, session.DocId); err != nil {
			log.Warn("Could not delete document on reset, continuing", "docId", session.DocId, "error", err)
		}
	}
	return c.sessions.ClearSession(ctx, sessionId)
}

// Snapshot returns the session record plus its conversation history.
func (c *SessionController) Snapshot(ctx context.Context, sessionId string) (sessionModel.Session, []sessionModel.Message) {
	session, found := c.sessions.GetSession(ctx, sessionId)
	if !found {
		return sessionModel.Session{Id: sessionId}, nil
	}
	history, err := c.sessions.GetHistory(ctx, sessionId)
	if err != nil {
		logSC.Error("Failed to load history", "session Id", sessionId, "error", err)
	}
	return session, history
}

func countNonEmptyPages(pages []docModel.Page) int {
	n := 0
	for _, p := range pages {
		if strings.TrimSpace(p.Text) != "" {
			n++
		}
	}
	return n
}

// GetSessionController exposes the singleton to the MCP surface, which talks
// to the same controller as the HTTP handlers.
func GetSessionController() *SessionController {
	return controllerInstance
}

// NewTestController bypasses the singleton for package tests.
func NewTestController(ragService rag.Service, sessions sessionModel.SessionStore) *SessionController {
	if logSC == nil {
		logSC = logger_i.NewLogger("SessionController")
	}
	return &SessionController{ragService: ragService, sessions: sessions}
}
