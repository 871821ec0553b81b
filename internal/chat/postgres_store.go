package chat

import (
	"context"
	"database/sql"
	"time"
)

// postgresStore — долговременная история: одна реплика — одна строка,
// порядок по id.
type postgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) HistoryStore {
	return &postgresStore{db: db}
}

func EnsureMessagesSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS messages (
			id BIGSERIAL PRIMARY KEY,
			session_key TEXT NOT NULL,
			role TEXT NOT NULL,
			content TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_messages_session ON messages (session_key, id);
	`)
	return err
}

func (s *postgresStore) GetTurns(ctx context.Context, sessionKey string) ([]Turn, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, role, content, created_at
		FROM messages
		WHERE session_key = $1
		ORDER BY id ASC
	`, sessionKey)
	if err != nil {
		return nil, NewError(KindStoreUnavailable, "chat.postgres.GetTurns", err)
	}
	defer rows.Close()

	var turns []Turn
	for rows.Next() {
		var t Turn
		if err := rows.Scan(&t.ID, &t.Role, &t.Content, &t.CreatedAt); err != nil {
			return nil, NewError(KindStoreUnavailable, "chat.postgres.GetTurns", err)
		}
		turns = append(turns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, NewError(KindStoreUnavailable, "chat.postgres.GetTurns", err)
	}
	return turns, nil
}

func (s *postgresStore) AppendUser(ctx context.Context, sessionKey, content string) (int64, error) {
	return s.append(ctx, sessionKey, RoleUser, content)
}

func (s *postgresStore) AppendAssistant(ctx context.Context, sessionKey, content string) (int64, error) {
	return s.append(ctx, sessionKey, RoleAssistant, content)
}

func (s *postgresStore) append(ctx context.Context, sessionKey, role, content string) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO messages (session_key, role, content, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, sessionKey, role, content, time.Now()).Scan(&id)
	if err != nil {
		return 0, NewError(KindStoreUnavailable, "chat.postgres.append", err)
	}
	return id, nil
}
