package ai

import "strings"

// диагностика ошибок провайдера для уведомлений админу
func DiagnoseError(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.ToLower(err.Error())

	switch {
	case strings.Contains(msg, "status code: 401"):
		return "Неверный API-ключ провайдера."
	case strings.Contains(msg, "status code: 404"):
		return "Модель не найдена."
	case strings.Contains(msg, "status code: 429"):
		return "Превышен лимит провайдера."
	case strings.Contains(msg, "status code: 400") && strings.Contains(msg, "model"):
		return "Неверно указана модель."
	case strings.Contains(msg, "status code: 400"):
		return "Некорректный запрос к провайдеру."
	case strings.Contains(msg, "status code: 500"):
		return "Внутренняя ошибка провайдера."
	case strings.Contains(msg, "context deadline exceeded"):
		return "Провайдер не ответил за отведённое время."
	}
	return "Неизвестная ошибка провайдера: " + err.Error()
}
