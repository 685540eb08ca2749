package tgclient

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

type client struct {
	bot *bot.Bot
}

// NewClient wraps a running telegram bot as a plain message sender.
func NewClient(b *bot.Bot) *client {
	return &client{bot: b}
}

func (c *client) SendMessage(ctx context.Context, chatID int64, text string) error {
	_, err := c.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeMarkdownV1,
	})
	if err != nil {
		return fmt.Errorf("send telegram message to chat %d: %w", chatID, err)
	}

	return nil
}
