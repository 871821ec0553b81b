package chat

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindStoreUnavailable Kind = "STORE_UNAVAILABLE"
	KindGeneration       Kind = "GENERATION_FAILURE"
	KindTranscription    Kind = "TRANSCRIPTION_FAILURE"
	KindSynthesis        Kind = "SYNTHESIS_FAILURE"
)

// Error — типизированная ошибка вместо "поймали, залогировали, вернули nil".
// Транспорт сам решает, что показать пользователю.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func NewError(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func IsKind(err error, kind Kind) bool {
	var ce *Error
	return errors.As(err, &ce) && ce.Kind == kind
}
