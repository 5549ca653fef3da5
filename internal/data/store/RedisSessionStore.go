package store

import (
	"context"
	"encoding/json"

	"github.com/asunkara/PDFChatAPI/internal/config"
	"github.com/asunkara/PDFChatAPI/internal/data/redisStore"
	"github.com/asunkara/PDFChatAPI/internal/domain/sessionModel"
	"github.com/asunkara/PDFChatAPI/pkg/logger_i"
)

const (
	sessionKeyPrefix = "session:"
	historyKeyPrefix = "history:"
)

type RedisSessionStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

// GetRedisSessionStore returns nil when Redis is unreachable; the caller
// falls back to the in-memory store.
func GetRedisSessionStore(ctx context.Context) *RedisSessionStore {
	kv := redisStore.GetRedisStore(ctx, config.RedisSessionStore)
	if kv == nil {
		return nil
	}
	return &RedisSessionStore{
		store:  kv,
		logger: logger_i.NewLogger("SessionStore"),
	}
}

func (s *RedisSessionStore) GetSession(ctx context.Context, id string) (sessionModel.Session, bool) {
	var session sessionModel.Session
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "session Id", id)

	val, err := s.store.Get(ctx, sessionKeyPrefix+id)
	if s.store.IsNil(err) {
		return session, false
	} else if err != nil {
		log.Error("Failed to read session", "error", err)
		return session, false
	}

	if err = json.Unmarshal([]byte(val), &session); err != nil {
		log.Error("Failed to unmarshal session", "error", err)
		return session, false
	}
	return session, true
}

func (s *RedisSessionStore) SaveSession(ctx context.Context, session sessionModel.Session) error {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "session Id", session.Id)

	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	err = s.store.Set(ctx, sessionKeyPrefix+session.Id, data, config.RedisSessionTTL)
	if err == nil {
		log.Debug("Saved session to Redis")
	}
	return err
}

func (s *RedisSessionStore) AppendMessage(ctx context.Context, sessionId string, message sessionModel.Message) error {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "session Id", sessionId)

	data, err := json.Marshal(message)
	if err != nil {
		return err
	}
	if err = s.store.ListPush(ctx, historyKeyPrefix+sessionId, data); err != nil {
		log.Error("error saving message", "error:", err)
		return err
	}
	// history expires together with its session record
	return s.store.Expire(ctx, historyKeyPrefix+sessionId, config.RedisSessionTTL)
}

func (s *RedisSessionStore) GetHistory(ctx context.Context, sessionId string) ([]sessionModel.Message, error) {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "session Id", sessionId)

	raw, err := s.store.ListGetAll(ctx, historyKeyPrefix+sessionId)
	if err != nil {
		log.Error("Error getting history", "error:", err)
		return nil, err
	}

	messages := make([]sessionModel.Message, 0, len(raw))
	for _, r := range raw {
		var m sessionModel.Message
		if err = json.Unmarshal([]byte(r), &m); err != nil {
			log.Error("Skipping unreadable history entry", "error", err)
			continue
		}
		messages = append(messages, m)
	}
	return messages, nil
}

func (s *RedisSessionStore) ClearSession(ctx context.Context, sessionId string) error {
	return s.store.Del(ctx, sessionKeyPrefix+sessionId, historyKeyPrefix+sessionId)
}

// TestSessionStore backs the store with an arbitrary kv store, used with
// miniredis in tests.
func TestSessionStore(kv *redisStore.Store) *RedisSessionStore {
	return &RedisSessionStore{
		store:  kv,
		logger: logger_i.NewLogger("test session store"),
	}
}
