package ai

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDiagnoseError(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"error, status code: 401, message: unauthorized", "Неверный API-ключ провайдера."},
		{"error, status code: 429, message: rate limit", "Превышен лимит провайдера."},
		{"error, status code: 400, message: unknown model xyz", "Неверно указана модель."},
		{"error, status code: 500", "Внутренняя ошибка провайдера."},
		{"context deadline exceeded", "Провайдер не ответил за отведённое время."},
	}

	for _, c := range cases {
		require.Equal(t, c.want, DiagnoseError(errors.New(c.in)), c.in)
	}

	require.Contains(t, DiagnoseError(errors.New("something weird")), "Неизвестная ошибка")
	require.Equal(t, "", DiagnoseError(nil))
}
