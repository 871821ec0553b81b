package user

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

func EnsureUsersSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id BIGINT PRIMARY KEY,
			username TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'free',
			name TEXT NOT NULL DEFAULT '',
			age INT NOT NULL DEFAULT 0,
			gender TEXT NOT NULL DEFAULT ''
		);
	`)
	return err
}

func (r *repo) Get(ctx context.Context, id int64) (*User, error) {
	var u User
	err := r.db.QueryRowContext(ctx, `
		SELECT id, username, status, name, age, gender
		FROM users
		WHERE id = $1
	`, id).Scan(&u.ID, &u.Username, &u.Status, &u.Name, &u.Age, &u.Gender)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, chat.NewError(chat.KindStoreUnavailable, "user.Get", err)
	}
	return &u, nil
}

func (r *repo) Create(ctx context.Context, u *User) (*User, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO users (id, username, status)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET id = EXCLUDED.id
		RETURNING id, username, status, name, age, gender
	`, u.ID, u.Username, u.Status).Scan(&u.ID, &u.Username, &u.Status, &u.Name, &u.Age, &u.Gender)

	if err != nil {
		return nil, chat.NewError(chat.KindStoreUnavailable, "user.Create", err)
	}
	return u, nil
}

func (r *repo) Update(ctx context.Context, in UpdateInput) (*User, error) {
	var u User
	err := r.db.QueryRowContext(ctx, `
		UPDATE users
		SET username = COALESCE($2, username),
		    status   = COALESCE($3, status),
		    name     = COALESCE($4, name),
		    age      = COALESCE($5, age),
		    gender   = COALESCE($6, gender)
		WHERE id = $1
		RETURNING id, username, status, name, age, gender
	`, in.ID, in.Username, in.Status, in.Name, in.Age, in.Gender).Scan(&u.ID, &u.Username, &u.Status, &u.Name, &u.Age, &u.Gender)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, chat.NewError(chat.KindStoreUnavailable, "user.Update", err)
	}
	return &u, nil
}
