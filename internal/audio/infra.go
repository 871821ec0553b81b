package audio

import (
	"context"
	"database/sql"
	"errors"

	"github.com/antonvrn/animegirl-backend/internal/chat"
)

type repo struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) Repo {
	return &repo{db: db}
}

func EnsureAudiosSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS audios (
			id BIGSERIAL PRIMARY KEY,
			message_id BIGINT NOT NULL,
			session_key TEXT NOT NULL,
			audio TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_audios_session ON audios (session_key, message_id);
	`)
	return err
}

func (r *repo) Create(ctx context.Context, messageID int64, sessionKey, audioB64 string) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO audios (message_id, session_key, audio)
		VALUES ($1, $2, $3)
		RETURNING id
	`, messageID, sessionKey, audioB64).Scan(&id)
	if err != nil {
		return 0, chat.NewError(chat.KindStoreUnavailable, "audio.Create", err)
	}
	return id, nil
}

func (r *repo) ListBySession(ctx context.Context, sessionKey string) ([]Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, message_id, session_key, audio
		FROM audios
		WHERE session_key = $1
		ORDER BY message_id ASC
	`, sessionKey)
	if err != nil {
		return nil, chat.NewError(chat.KindStoreUnavailable, "audio.ListBySession", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.MessageID, &rec.SessionKey, &rec.Audio); err != nil {
			return nil, chat.NewError(chat.KindStoreUnavailable, "audio.ListBySession", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, chat.NewError(chat.KindStoreUnavailable, "audio.ListBySession", err)
	}
	return records, nil
}

// LastMessageID — id последней реплики сессии в messages.
func (r *repo) LastMessageID(ctx context.Context, sessionKey string) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
		SELECT id
		FROM messages
		WHERE session_key = $1
		ORDER BY id DESC
		LIMIT 1
	`, sessionKey).Scan(&id)

	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, chat.NewError(chat.KindStoreUnavailable, "audio.LastMessageID", err)
	}
	return id, nil
}
