package audio

import "context"

// Record — синтезированное аудио, привязанное к ответной реплике.
type Record struct {
	ID         int64  `json:"id"`
	MessageID  int64  `json:"message_id"`
	SessionKey string `json:"session_key"`
	Audio      string `json:"audio"` // base64
}

type Repo interface {
	Create(ctx context.Context, messageID int64, sessionKey, audioB64 string) (int64, error)
	ListBySession(ctx context.Context, sessionKey string) ([]Record, error)
	LastMessageID(ctx context.Context, sessionKey string) (int64, error)
}

type Service interface {
	// AttachToLastReply сохраняет аудио для последней реплики сессии.
	AttachToLastReply(ctx context.Context, sessionKey, audioB64 string) error
	ListBySession(ctx context.Context, sessionKey string) ([]Record, error)
}
