package telegram

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

func inlineHowToUseKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Как пользоваться", "how_use"),
		),
	)
}

func inlineDataKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Ввести свои данные", "input_data"),
		),
	)
}

func inlineGenderKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Мужской", "gender_male"),
			tgbotapi.NewInlineKeyboardButtonData("Женский", "gender_female"),
		),
	)
}
