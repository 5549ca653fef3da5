package store

import (
	"context"
	"sync"

	"github.com/asunkara/PDFChatAPI/internal/domain/sessionModel"
	"github.com/asunkara/PDFChatAPI/pkg/logger_i"
)

var inMemLogger = logger_i.NewLogger("InMem SessionStore")

// InMemorySessionStore is the fallback when Redis is offline. Sessions are
// lost on restart, which matches the single-process dev setup it serves.
type InMemorySessionStore struct {
	mu       *sync.RWMutex
	sessions map[string]sessionModel.Session
	history  map[string][]sessionModel.Message
}

func InitInMemorySessionStore() *InMemorySessionStore {
	return &InMemorySessionStore{
		mu:       new(sync.RWMutex),
		sessions: make(map[string]sessionModel.Session),
		history:  make(map[string][]sessionModel.Message),
	}
}

func (s *InMemorySessionStore) GetSession(ctx context.Context, id string) (sessionModel.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, found := s.sessions[id]
	return session, found
}

func (s *InMemorySessionStore) SaveSession(ctx context.Context, session sessionModel.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.Id] = session
	inMemLogger.Debug("Saved session", "session Id", session.Id)
	return nil
}

func (s *InMemorySessionStore) AppendMessage(ctx context.Context, sessionId string, message sessionModel.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history[sessionId] = append(s.history[sessionId], message)
	return nil
}

func (s *InMemorySessionStore) GetHistory(ctx context.Context, sessionId string) ([]sessionModel.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	messages := make([]sessionModel.Message, len(s.history[sessionId]))
	copy(messages, s.history[sessionId])
	return messages, nil
}

func (s *InMemorySessionStore) ClearSession(ctx context.Context, sessionId string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionId)
	delete(s.history, sessionId)
	return nil
}
