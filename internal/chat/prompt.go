package chat

import (
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// Бюджет истории в символах: старые реплики отбрасываем, свежие всегда
// остаются целиком.
const defaultHistoryBudget = 24000

// BuildMessages собирает вход для модели: сначала персонажный промпт,
// потом история по порядку, последним — новое сообщение пользователя.
func BuildMessages(persona string, turns []Turn, userText string) []openai.ChatCompletionMessage {
	turns = trimToBudget(turns, defaultHistoryBudget)

	messages := make([]openai.ChatCompletionMessage, 0, len(turns)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: persona,
	})

	for _, t := range turns {
		role := openai.ChatMessageRoleUser
		if t.Role == RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		content := strings.TrimSpace(t.Content)
		if content == "" {
			continue
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: content,
		})
	}

	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: userText,
	})
	return messages
}

// обрезаем историю по лимиту символов с хвоста
func trimToBudget(turns []Turn, budget int) []Turn {
	total := 0
	for _, t := range turns {
		total += len(t.Content)
	}
	if total <= budget {
		return turns
	}

	total = 0
	start := len(turns)
	for i := len(turns) - 1; i >= 0; i-- {
		total += len(turns[i].Content)
		if total > budget {
			start = i + 1
			break
		}
	}
	// последняя реплика остаётся даже если сама не влезает в бюджет
	if start >= len(turns) && len(turns) > 0 {
		start = len(turns) - 1
	}
	return turns[start:]
}
