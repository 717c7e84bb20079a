package notify

import (
	"context"
	"fmt"

	"dhapi/lib/dhlottery"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type TelegramOptions struct {
	Token  string
	ChatId int64
	// ApiEndpoint defaults to tgbotapi.APIEndpoint, it must contain two %s
	// verbs for the token and the method.
	ApiEndpoint string
}

// TelegramObserver sends every purchase to a telegram chat.
type TelegramObserver struct {
	bot    *tgbotapi.BotAPI
	chatId int64
}

// NewTelegramObserver authorizes the bot, it fails if the token is invalid.
func NewTelegramObserver(opts TelegramOptions) (*TelegramObserver, error) {
	if opts.ChatId == 0 {
		return nil, fmt.Errorf("telegram: chat id is required")
	}
	endpoint := opts.ApiEndpoint
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}
	bot, err := tgbotapi.NewBotAPIWithAPIEndpoint(opts.Token, endpoint)
	if err != nil {
		return nil, fmt.Errorf("telegram: %w", err)
	}
	return &TelegramObserver{bot: bot, chatId: opts.ChatId}, nil
}

func (o *TelegramObserver) OnPurchase(ctx context.Context, slots []dhlottery.Slot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(o.chatId, FormatSlots(slots))
	_, err := o.bot.Send(msg)
	if err != nil {
		return fmt.Errorf("telegram: send to %d: %w", o.chatId, err)
	}
	return nil
}
