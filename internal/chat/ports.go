package chat

import (
	"context"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn — одна реплика в диалоге. После записи не меняется.
type Turn struct {
	ID        int64     `json:"id,omitempty"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Tier — каким бэкендом хранить историю сессии.
type Tier string

const (
	TierEphemeral Tier = "ephemeral" // Redis, живёт TTL от последней записи
	TierDurable   Tier = "durable"   // Postgres, не протухает
)

// TierForStatus — premium держим в Postgres, остальных в Redis.
func TierForStatus(status string) Tier {
	if status == "premium" {
		return TierDurable
	}
	return TierEphemeral
}

// HistoryStore — единый интерфейс над обоими хранилищами истории.
// Неизвестный ключ — это просто пустая история, не ошибка.
type HistoryStore interface {
	GetTurns(ctx context.Context, sessionKey string) ([]Turn, error)
	AppendUser(ctx context.Context, sessionKey, content string) (int64, error)
	AppendAssistant(ctx context.Context, sessionKey, content string) (int64, error)
}

// StoreResolver — выбирает хранилище по тарифу сессии.
type StoreResolver interface {
	Resolve(tier Tier) HistoryStore
}

// Generator — один вызов LLM, без ретраев и стриминга.
type Generator interface {
	Generate(ctx context.Context, messages []openai.ChatCompletionMessage) (string, error)
}

// Service — оркестратор диалога.
// Handle получает ответ модели на новое сообщение пользователя.
// При этом сервис сам подтягивает историю из хранилища и сохраняет обе реплики.
type Service interface {
	Handle(ctx context.Context, sessionKey string, tier Tier, userText string) (string, error)
}
