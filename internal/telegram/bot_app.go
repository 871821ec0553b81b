package telegram

import (
	"log"
	"os"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/antonvrn/animegirl-backend/internal/chat"
	"github.com/antonvrn/animegirl-backend/internal/notify"
	"github.com/antonvrn/animegirl-backend/internal/speech"
	"github.com/antonvrn/animegirl-backend/internal/user"
)

type BotApp struct {
	ChatService   chat.Service
	SpeechService *speech.Service
	UserService   user.Service
	ErrorNotify   notify.Notificator

	reg *registrationFlow
	bot *tgbotapi.BotAPI
}

func NewBotApp(
	chatSvc chat.Service,
	speechSvc *speech.Service,
	userSvc user.Service,
	errNotify notify.Notificator,
) *BotApp {
	return &BotApp{
		ChatService:   chatSvc,
		SpeechService: speechSvc,
		UserService:   userSvc,
		ErrorNotify:   errNotify,
		reg:           newRegistrationFlow(),
	}
}

// InitBot — без BOT_TOKEN работаем только как HTTP API.
func (app *BotApp) InitBot() error {
	token := os.Getenv("BOT_TOKEN")
	if token == "" {
		log.Printf("[bot_app] BOT_TOKEN not set, telegram disabled")
		return nil
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return err
	}

	app.bot = bot
	log.Printf("[bot_app] ready: @%s", bot.Self.UserName)

	go app.runBotLoop(bot)
	return nil
}

func (app *BotApp) GetBot() *tgbotapi.BotAPI {
	return app.bot
}
