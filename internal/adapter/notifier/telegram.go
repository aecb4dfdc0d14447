package notifier

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/semmidev/chbackup/internal/config"
)

type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegram(cfg *config.TelegramConfig) (*TelegramNotifier, error) {
	return NewTelegramWithEndpoint(cfg, tgbotapi.APIEndpoint)
}

// NewTelegramWithEndpoint takes an API endpoint format such as
// "https://api.telegram.org/bot%s/%s".
func NewTelegramWithEndpoint(cfg *config.TelegramConfig, endpoint string) (*TelegramNotifier, error) {
	chatID, err := cfg.ChatIDInt()
	if err != nil {
		return nil, fmt.Errorf("invalid telegram chat id: %w", err)
	}

	bot, err := tgbotapi.NewBotAPIWithAPIEndpoint(cfg.BotToken, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	return &TelegramNotifier{bot: bot, chatID: chatID}, nil
}

func (t *TelegramNotifier) Notify(ctx context.Context, message string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(t.chatID, message)
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send telegram notification: %w", err)
	}
	return nil
}
