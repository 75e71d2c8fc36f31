package pager

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramPager sends callouts to a Telegram chat.
type TelegramPager struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegram creates a Telegram pager for the given bot token and
// chat.
func NewTelegram(token string, chatID int64) (*TelegramPager, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram: token is required")
	}
	if chatID == 0 {
		return nil, fmt.Errorf("telegram: chat_id is required")
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram: create bot: %w", err)
	}
	return &TelegramPager{bot: bot, chatID: chatID}, nil
}

func (p *TelegramPager) Name() string { return "telegram" }

func (p *TelegramPager) Page(_ context.Context, c Callout) error {
	msg := tgbotapi.NewMessage(p.chatID, c.Message())
	if _, err := p.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram: send message: %w", err)
	}
	return nil
}
