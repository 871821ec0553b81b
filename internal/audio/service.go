package audio

import "context"

type service struct {
	repo Repo
}

func NewService(repo Repo) Service {
	return &service{repo: repo}
}

func (s *service) AttachToLastReply(ctx context.Context, sessionKey, audioB64 string) error {
	messageID, err := s.repo.LastMessageID(ctx, sessionKey)
	if err != nil {
		return err
	}
	if messageID == 0 {
		// эфемерная сессия: реплики не в Postgres, привязывать не к чему
		return nil
	}
	_, err = s.repo.Create(ctx, messageID, sessionKey, audioB64)
	return err
}

func (s *service) ListBySession(ctx context.Context, sessionKey string) ([]Record, error) {
	return s.repo.ListBySession(ctx, sessionKey)
}
