package handlers_test

import (
	"context"
	"errors"
	"testing"

	"github.com/asunkara/PDFChatAPI/internal/data/store"
	"github.com/asunkara/PDFChatAPI/internal/domain/docModel"
	"github.com/asunkara/PDFChatAPI/internal/domain/sessionModel"
	"github.com/asunkara/PDFChatAPI/internal/handlers"
	"github.com/asunkara/PDFChatAPI/internal/rag"
)

type mockRagService struct {
	OnIndexDocument  func(ctx context.Context, doc docModel.Document, pages []docModel.Page) (int, error)
	OnAskQuestion    func(ctx context.Context, docId string, question string) (rag.Answer, error)
	OnDeleteDocument func(ctx context.Context, docId string) error
}

func (m *mockRagService) IndexDocument(ctx context.Context, doc docModel.Document, pages []docModel.Page) (int, error) {
	if m.OnIndexDocument != nil {
		return m.OnIndexDocument(ctx, doc, pages)
	}
	return 1, nil
}

func (m *mockRagService) AskQuestion(ctx context.Context, docId string, question string) (rag.Answer, error) {
	if m.OnAskQuestion != nil {
		return m.OnAskQuestion(ctx, docId, question)
	}
	return rag.Answer{Text: "mock answer"}, nil
}

func (m *mockRagService) DeleteDocument(ctx context.Context, docId string) error {
	if m.OnDeleteDocument != nil {
		return m.OnDeleteDocument(ctx, docId)
	}
	return nil
}

func seedSession(t *testing.T, sessions sessionModel.SessionStore, id string, docId string) {
	t.Helper()
	err := sessions.SaveSession(context.Background(), sessionModel.Session{
		Id: id, DocId: docId, PDFName: "seeded.pdf", ChunkCount: 4,
	})
	if err != nil {
		t.Fatalf("seeding session failed: %v", err)
	}
}

func TestHandleAsk_NoDocument(t *testing.T) {
	controller := handlers.NewTestController(&mockRagService{}, store.InitInMemorySessionStore())

	_, err := controller.HandleAsk(context.Background(), "s1", "anything")
	if !errors.Is(err, handlers.ErrNoActiveDocument) {
		t.Fatalf("err = %v, want ErrNoActiveDocument", err)
	}
}

func TestHandleAsk_RecordsConversation(t *testing.T) {
	sessions := store.InitInMemorySessionStore()
	seedSession(t, sessions, "s1", "doc-1")

	var askedDoc string
	svc := &mockRagService{
		OnAskQuestion: func(ctx context.Context, docId string, question string) (rag.Answer, error) {
			askedDoc = docId
			return rag.Answer{Text: "the answer"}, nil
		},
	}
	controller := handlers.NewTestController(svc, sessions)

	answer, err := controller.HandleAsk(context.Background(), "s1", "the question")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if askedDoc != "doc-1" {
		t.Errorf("asked doc %q, want doc-1", askedDoc)
	}
	if answer.Text != "the answer" {
		t.Errorf("answer = %q", answer.Text)
	}

	history, err := sessions.GetHistory(context.Background(), "s1")
	if err != nil {
		t.Fatalf("GetHistory failed: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("history length = %d, want 2", len(history))
	}
	if history[0].Role != sessionModel.RoleUser || history[0].Content != "the question" {
		t.Errorf("first message = %+v", history[0])
	}
	if history[1].Role != sessionModel.RoleAssistant || history[1].Content != "the answer" {
		t.Errorf("second message = %+v", history[1])
	}
}

func TestHandleAsk_GenerationErrorLeavesHistoryUntouched(t *testing.T) {
	sessions := store.InitInMemorySessionStore()
	seedSession(t, sessions, "s1", "doc-1")

	svc := &mockRagService{
		OnAskQuestion: func(ctx context.Context, docId string, question string) (rag.Answer, error) {
			return rag.Answer{}, errors.New("provider down")
		},
	}
	controller := handlers.NewTestController(svc, sessions)

	if _, err := controller.HandleAsk(context.Background(), "s1", "q"); err == nil {
		t.Fatal("expected error, got nil")
	}
	history, _ := sessions.GetHistory(context.Background(), "s1")
	if len(history) != 0 {
		t.Errorf("history length = %d, want 0", len(history))
	}
}

func TestHandleReset_DeletesDocumentAndClearsSession(t *testing.T) {
	sessions := store.InitInMemorySessionStore()
	seedSession(t, sessions, "s1", "doc-1")

	var deleted string
	svc := &mockRagService{
		OnDeleteDocument: func(ctx context.Context, docId string) error {
			deleted = docId
			return nil
		},
	}
	controller := handlers.NewTestController(svc, sessions)

	if err := controller.HandleReset(context.Background(), "s1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != "doc-1" {
		t.Errorf("deleted doc %q, want doc-1", deleted)
	}
	if session, found := sessions.GetSession(context.Background(), "s1"); found && session.HasDocument() {
		t.Error("session still has a document after reset")
	}
}

func TestHandleReset_DeleteFailureStillClears(t *testing.T) {
	sessions := store.InitInMemorySessionStore()
	seedSession(t, sessions, "s1", "doc-1")

	svc := &mockRagService{
		OnDeleteDocument: func(ctx context.Context, docId string) error {
			return errors.New("vector store unreachable")
		},
	}
	controller := handlers.NewTestController(svc, sessions)

	// delete is best effort, the reset itself must succeed
	if err := controller.HandleReset(context.Background(), "s1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session, found := sessions.GetSession(context.Background(), "s1"); found && session.HasDocument() {
		t.Error("session still has a document after reset")
	}
}

func TestSnapshot_UnknownSession(t *testing.T) {
	controller := handlers.NewTestController(&mockRagService{}, store.InitInMemorySessionStore())

	session, history := controller.Snapshot(context.Background(), "ghost")
	if session.Id != "ghost" {
		t.Errorf("session id = %q, want ghost", session.Id)
	}
	if session.HasDocument() {
		t.Error("unknown session reports a document")
	}
	if len(history) != 0 {
		t.Errorf("history length = %d, want 0", len(history))
	}
}
