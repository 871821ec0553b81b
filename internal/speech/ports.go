package speech

import (
	"context"
	"io"
)

type Transcriber interface {
	Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error) // голос → текст
}

type Synthesizer interface {
	Synthesize(ctx context.Context, text string) (string, error) // текст → base64 аудио
}
