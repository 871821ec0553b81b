package telegram

import (
	"context"
	"fmt"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/antonvrn/animegirl-backend/internal/ai"
	"github.com/antonvrn/animegirl-backend/internal/chat"
)

const howToUseText = `Я — Алиса, просто пиши мне как обычному человеку.

Можно отправлять текст или голосовые — на голосовые я тоже отвечаю голосом.
Я помню наш разговор, так что не нужно каждый раз всё объяснять заново.`

func (app *BotApp) handleStart(bot *tgbotapi.BotAPI, chatID int64) {
	m := tgbotapi.NewMessage(chatID, "Привет, я Алиса, ищу себе новые знакомства")
	m.ReplyMarkup = inlineHowToUseKeyboard()
	bot.Send(m)
}

func (app *BotApp) handleCallback(
	ctx context.Context,
	bot *tgbotapi.BotAPI,
	cb *tgbotapi.CallbackQuery,
	tgID int64,
) {
	// убираем "часики" на кнопке
	bot.Request(tgbotapi.NewCallback(cb.ID, ""))

	chatID := cb.Message.Chat.ID

	switch {
	case cb.Data == "how_use":
		m := tgbotapi.NewMessage(chatID, howToUseText)
		m.ReplyMarkup = inlineDataKeyboard()
		bot.Send(m)

	case cb.Data == "input_data":
		bot.Send(tgbotapi.NewMessage(chatID, app.reg.start(tgID)))

	case strings.HasPrefix(cb.Data, "gender_"):
		app.finishRegistration(ctx, bot, cb, tgID, strings.TrimPrefix(cb.Data, "gender_"))
	}
}

func (app *BotApp) handleRegistrationText(
	bot *tgbotapi.BotAPI,
	msg *tgbotapi.Message,
	tgID int64,
) {
	reply, askGender, handled := app.reg.submitText(tgID, msg.Text)
	if !handled {
		return
	}

	m := tgbotapi.NewMessage(msg.Chat.ID, reply)
	if askGender {
		m.ReplyMarkup = inlineGenderKeyboard()
	}
	bot.Send(m)
}

func (app *BotApp) finishRegistration(
	ctx context.Context,
	bot *tgbotapi.BotAPI,
	cb *tgbotapi.CallbackQuery,
	tgID int64,
	gender string,
) {
	chatID := cb.Message.Chat.ID

	st, ok := app.reg.submitGender(tgID, gender)
	if !ok {
		bot.Send(tgbotapi.NewMessage(chatID, "Неправильный выбор"))
		return
	}

	if _, err := app.UserService.Update(ctx, profileUpdate(tgID, st)); err != nil {
		log.Printf("[reg] save fail tgID=%d: %v", tgID, err)
		app.ErrorNotify.Notify(ctx, err, fmt.Sprintf("❗ Не сохранился профиль\n\nПользователь: %d", tgID))
		bot.Send(tgbotapi.NewMessage(chatID, "⚠️ Не удалось сохранить профиль, попробуй ещё раз."))
		return
	}

	// убираем клавиатуру выбора пола под исходным сообщением
	bot.Request(tgbotapi.NewEditMessageReplyMarkup(chatID, cb.Message.MessageID, tgbotapi.InlineKeyboardMarkup{
		InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{},
	}))

	log.Printf("[reg] done tgID=%d", tgID)
	bot.Send(tgbotapi.NewMessage(chatID, profileSavedText(st)))
}

func (app *BotApp) handleText(
	ctx context.Context,
	bot *tgbotapi.BotAPI,
	msg *tgbotapi.Message,
	tgID int64,
	tier chat.Tier,
) {
	chatID := msg.Chat.ID
	userText := msg.Text

	log.Printf("[text] start tgID=%d tier=%s", tgID, tier)

	// индикатор набора текста вместо лишнего сообщения
	bot.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping))

	reply, err := app.ChatService.Handle(ctx, app.sessionKey(tgID), tier, userText)
	if err != nil {
		log.Printf("[text] handle fail tgID=%d: %v", tgID, err)

		details := fmt.Sprintf("❗ Ошибка ответа\n\nПользователь: %d\nТекст: %q", tgID, userText)
		if chat.IsKind(err, chat.KindGeneration) {
			details += "\n\n" + ai.DiagnoseError(err)
		}
		app.ErrorNotify.Notify(ctx, err, details)

		bot.Send(tgbotapi.NewMessage(chatID, "⚠️ Не получилось ответить, попробуй ещё раз чуть позже."))
		return
	}

	bot.Send(tgbotapi.NewMessage(chatID, reply))

	log.Printf("[text] done tgID=%d", tgID)
}
