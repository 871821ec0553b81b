package delivery

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/antonvrn/animegirl-backend/internal/chat"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// renderError — типизированная ошибка → HTTP-статус плюс извинение.
// Молчаливого null в ответе больше нет.
func renderError(w http.ResponseWriter, err error) {
	switch {
	case chat.IsKind(err, chat.KindStoreUnavailable):
		writeJSON(w, http.StatusBadGateway, map[string]string{
			"error":   string(chat.KindStoreUnavailable),
			"message": "Хранилище временно недоступно, попробуйте позже.",
		})
	case chat.IsKind(err, chat.KindGeneration):
		writeJSON(w, http.StatusBadGateway, map[string]string{
			"error":   string(chat.KindGeneration),
			"message": "Не получилось ответить, попробуйте ещё раз.",
		})
	case chat.IsKind(err, chat.KindTranscription):
		writeJSON(w, http.StatusBadGateway, map[string]string{
			"error":   string(chat.KindTranscription),
			"message": "Не удалось распознать аудио.",
		})
	case chat.IsKind(err, chat.KindSynthesis):
		writeJSON(w, http.StatusBadGateway, map[string]string{
			"error":   string(chat.KindSynthesis),
			"message": "Не удалось озвучить ответ.",
		})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "INTERNAL",
			"message": "Внутренняя ошибка сервера.",
		})
	}
}
