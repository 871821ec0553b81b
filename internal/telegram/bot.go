package telegram

import (
	"context"
	"log"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/antonvrn/animegirl-backend/internal/chat"
)

// runBotLoop — главный цикл получения апдейтов
func (app *BotApp) runBotLoop(bot *tgbotapi.BotAPI) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30

	updates := bot.GetUpdatesChan(u)
	log.Printf("[bot_loop] started username=@%s", bot.Self.UserName)

	for update := range updates {
		tgID := extractTelegramID(update)
		if tgID == 0 {
			continue
		}

		log.Printf("[bot_touch] fromTG=%d updateID=%d", tgID, update.UpdateID)

		// каждый апдейт в своей горутине, сессии сериализует оркестратор
		go app.dispatchUpdate(context.Background(), bot, tgID, update)
	}
}

func extractTelegramID(update tgbotapi.Update) int64 {
	switch {
	case update.Message != nil && update.Message.From != nil:
		return update.Message.From.ID
	case update.CallbackQuery != nil && update.CallbackQuery.From != nil:
		return update.CallbackQuery.From.ID
	}
	return 0
}

func (app *BotApp) dispatchUpdate(
	ctx context.Context,
	bot *tgbotapi.BotAPI,
	tgID int64,
	update tgbotapi.Update,
) {
	switch {
	case update.Message != nil:
		app.handleMessage(ctx, bot, update.Message, tgID)
	case update.CallbackQuery != nil:
		app.handleCallback(ctx, bot, update.CallbackQuery, tgID)
	}
}

func (app *BotApp) handleMessage(
	ctx context.Context,
	bot *tgbotapi.BotAPI,
	msg *tgbotapi.Message,
	tgID int64,
) {
	chatID := msg.Chat.ID

	username := ""
	if msg.From != nil {
		username = msg.From.UserName
	}

	u, err := app.UserService.GetOrCreate(ctx, tgID, username)
	if err != nil {
		log.Printf("[bot_loop] get-or-create fail tgID=%d err=%v", tgID, err)
		bot.Send(tgbotapi.NewMessage(chatID, "⚠️ Что-то пошло не так, попробуй позже."))
		return
	}

	switch {
	case msg.IsCommand() && msg.Command() == "start":
		app.handleStart(bot, chatID)

	case msg.Voice != nil:
		app.handleVoice(ctx, bot, msg, tgID, chat.TierForStatus(u.Status))

	case msg.Text != "":
		// пока открыта анкета, текст идёт в неё, а не в диалог
		if app.reg.active(tgID) {
			app.handleRegistrationText(bot, msg, tgID)
			return
		}
		app.handleText(ctx, bot, msg, tgID, chat.TierForStatus(u.Status))
	}
}

func (app *BotApp) sessionKey(tgID int64) string {
	return strconv.FormatInt(tgID, 10)
}
