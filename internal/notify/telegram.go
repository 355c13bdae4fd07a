// Package notify delivers reminder digests to external channels.
package notify

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"choreboard/pkg/logger"
)

// Telegram sends digests to linked Telegram chats. It only pushes messages;
// there is no conversational interface.
type Telegram struct {
	api *tgbotapi.BotAPI
}

// NewTelegram authorizes against the Bot API with the given token.
func NewTelegram(token string) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}
	logger.L.WithField("account", api.Self.UserName).Info("telegram notifier authorized")
	return &Telegram{api: api}, nil
}

// Send pushes one HTML-formatted message to a chat.
func (t *Telegram) Send(ctx context.Context, chatID int64, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := t.api.Send(msg); err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	return nil
}
