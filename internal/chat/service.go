package chat

import (
	"context"
	"log"
	"sync"
	"time"
)

const defaultGenTimeout = 90 * time.Second

type service struct {
	stores     StoreResolver
	gen        Generator
	persona    string
	genTimeout time.Duration

	// одна генерация на сессию за раз, чтобы параллельные сообщения
	// одного пользователя не перемешивали историю
	mu       sync.Mutex
	sessions map[string]*sessionLock
}

// sessionLock — мьютекс сессии со счётчиком ожидающих; запись
// убирается из карты, как только её никто не держит
type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func NewService(stores StoreResolver, gen Generator, persona string, genTimeout time.Duration) Service {
	if genTimeout <= 0 {
		genTimeout = defaultGenTimeout
	}
	return &service{
		stores:     stores,
		gen:        gen,
		persona:    persona,
		genTimeout: genTimeout,
		sessions:   make(map[string]*sessionLock),
	}
}

func (s *service) acquireSession(sessionKey string) *sessionLock {
	s.mu.Lock()
	l, ok := s.sessions[sessionKey]
	if !ok {
		l = &sessionLock{}
		s.sessions[sessionKey] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	return l
}

func (s *service) releaseSession(sessionKey string, l *sessionLock) {
	l.mu.Unlock()

	s.mu.Lock()
	l.refs--
	if l.refs == 0 {
		delete(s.sessions, sessionKey)
	}
	s.mu.Unlock()
}

// Handle — весь конвейер одного запроса:
// история → пользовательская реплика → промпт → LLM → ответная реплика.
// Никаких откатов: если генерация упала, реплика пользователя уже записана.
func (s *service) Handle(ctx context.Context, sessionKey string, tier Tier, userText string) (string, error) {
	lock := s.acquireSession(sessionKey)
	defer s.releaseSession(sessionKey, lock)

	start := time.Now()
	store := s.stores.Resolve(tier)

	turns, err := store.GetTurns(ctx, sessionKey)
	if err != nil {
		return "", err
	}

	if _, err := store.AppendUser(ctx, sessionKey, userText); err != nil {
		return "", err
	}

	messages := BuildMessages(s.persona, turns, userText)

	ctxGen, cancel := context.WithTimeout(ctx, s.genTimeout)
	defer cancel()

	reply, err := s.gen.Generate(ctxGen, messages)
	if err != nil {
		return "", NewError(KindGeneration, "chat.Handle", err)
	}

	if _, err := store.AppendAssistant(ctx, sessionKey, reply); err != nil {
		return "", err
	}

	log.Printf("[chat][%.1fs] session=%s tier=%s history=%d done",
		time.Since(start).Seconds(), sessionKey, tier, len(turns))

	return reply, nil
}
