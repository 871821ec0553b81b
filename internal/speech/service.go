package speech

import (
	"context"
	"io"
)

// === Единый сервис (и для стт и для ттс) ===

type Service struct {
	stt Transcriber
	tts Synthesizer
}

func NewService(stt Transcriber, tts Synthesizer) *Service {
	return &Service{
		stt: stt,
		tts: tts,
	}
}

func (s *Service) Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error) {
	return s.stt.Transcribe(ctx, filename, audio)
}

func (s *Service) Synthesize(ctx context.Context, text string) (string, error) {
	return s.tts.Synthesize(ctx, text)
}
