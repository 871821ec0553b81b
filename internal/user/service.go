package user

import (
	"context"
	"fmt"
)

type service struct {
	repo Repo
}

func NewService(repo Repo) Service {
	return &service{repo: repo}
}

func (s *service) Get(ctx context.Context, id int64) (*User, error) {
	return s.repo.Get(ctx, id)
}

// GetOrCreate — профиль создаётся неявно при первом обращении, статус free.
func (s *service) GetOrCreate(ctx context.Context, id int64, username string) (*User, error) {
	u, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if u != nil {
		return u, nil
	}
	return s.repo.Create(ctx, &User{
		ID:       id,
		Username: username,
		Status:   StatusFree,
	})
}

func (s *service) Update(ctx context.Context, in UpdateInput) (*User, error) {
	return s.repo.Update(ctx, in)
}

func (s *service) ToggleStatus(ctx context.Context, id int64) (string, error) {
	u, err := s.repo.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", fmt.Errorf("user not found: %d", id)
	}

	next := StatusPremium
	if u.Status == StatusPremium {
		next = StatusFree
	}

	if _, err := s.repo.Update(ctx, UpdateInput{ID: id, Status: &next}); err != nil {
		return "", err
	}
	return next, nil
}
