package error_notificator

import (
	"context"
	"fmt"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramInfra delivers alerts to one admin chat.
type TelegramInfra struct {
	bot    sender
	chatID int64
}

// NewTelegramInfra bounds every Bot API call by sendTimeout.
func NewTelegramInfra(token string, chatID int64, sendTimeout time.Duration) (*TelegramInfra, error) {
	bot, err := tgbotapi.NewBotAPIWithClient(token, tgbotapi.APIEndpoint, &http.Client{Timeout: sendTimeout})
	if err != nil {
		return nil, fmt.Errorf("init telegram bot: %w", err)
	}
	return &TelegramInfra{bot: bot, chatID: chatID}, nil
}

func (i *TelegramInfra) Notify(ctx context.Context, op string, err error, details string) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	text := fmt.Sprintf(
		"❗ Ошибка в speech_proxy (%s)\n\nОшибка: %v\n\nДетали: %s",
		op,
		err,
		details,
	)

	if _, sendErr := i.bot.Send(tgbotapi.NewMessage(i.chatID, text)); sendErr != nil {
		return fmt.Errorf("telegram send: %w", sendErr)
	}
	return nil
}

// NopInfra is used when no alert channel is configured.
type NopInfra struct{}

func (NopInfra) Notify(context.Context, string, error, string) error { return nil }
