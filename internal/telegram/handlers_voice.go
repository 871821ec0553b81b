package telegram

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"net/http"
	"os"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"github.com/antonvrn/animegirl-backend/internal/chat"
)

func (app *BotApp) handleVoice(
	ctx context.Context,
	bot *tgbotapi.BotAPI,
	msg *tgbotapi.Message,
	tgID int64,
	tier chat.Tier,
) {
	chatID := msg.Chat.ID
	fileID := msg.Voice.FileID

	log.Printf("[voice] start tgID=%d fileID=%s", tgID, fileID)

	file, err := bot.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		log.Printf("[voice] get file fail tgID=%d err=%v", tgID, err)
		bot.Send(tgbotapi.NewMessage(chatID, "⚠️ Не удалось получить голосовое."))
		return
	}

	url := file.Link(bot.Token)
	log.Printf("[voice] downloading from %s", url)

	resp, err := http.Get(url)
	if err != nil {
		log.Printf("[voice] download fail tgID=%d err=%v", tgID, err)
		bot.Send(tgbotapi.NewMessage(chatID, "⚠️ Ошибка при загрузке голосового."))
		return
	}
	defer resp.Body.Close()

	// голос -> текст
	text, err := app.SpeechService.Transcribe(ctx, fileID+".ogg", resp.Body)
	if err != nil {
		log.Printf("[voice] transcribe fail tgID=%d err=%v", tgID, err)
		bot.Send(tgbotapi.NewMessage(chatID, "⚠️ Не удалось распознать голос."))
		return
	}
	log.Printf("[voice] transcribed: %q", text)

	reply, err := app.ChatService.Handle(ctx, app.sessionKey(tgID), tier, text)
	if err != nil {
		log.Printf("[voice] handle fail tgID=%d err=%v", tgID, err)

		app.ErrorNotify.Notify(
			ctx,
			err,
			fmt.Sprintf("❗ Ошибка ответа на голосовое\n\nПользователь: %d", tgID),
		)

		bot.Send(tgbotapi.NewMessage(chatID, "⚠️ Не получилось ответить, попробуй ещё раз."))
		return
	}
	log.Printf("[voice] reply: %q", reply)

	// ответ -> голос; если синтез упал, отвечаем текстом
	audioB64, err := app.SpeechService.Synthesize(ctx, reply)
	if err != nil {
		log.Printf("[voice] synth fail tgID=%d err=%v", tgID, err)
		bot.Send(tgbotapi.NewMessage(chatID, reply))
		return
	}

	data, err := base64.StdEncoding.DecodeString(audioB64)
	if err != nil {
		log.Printf("[voice] decode fail tgID=%d err=%v", tgID, err)
		bot.Send(tgbotapi.NewMessage(chatID, reply))
		return
	}

	outVoice := fmt.Sprintf("/tmp/reply_%s.ogg", uuid.NewString())
	if err := os.WriteFile(outVoice, data, 0644); err != nil {
		log.Printf("[voice] save fail tgID=%d err=%v", tgID, err)
		bot.Send(tgbotapi.NewMessage(chatID, reply))
		return
	}
	defer os.Remove(outVoice)

	voice := tgbotapi.NewVoice(chatID, tgbotapi.FilePath(outVoice))
	if _, err := bot.Send(voice); err != nil {
		log.Printf("[voice] send fail: %v", err)
		bot.Send(tgbotapi.NewMessage(chatID, reply))
		return
	}

	log.Printf("[voice] done tgID=%d", tgID)
}
