package notify

import (
	"context"
	"fmt"

	"mealdispatch/internal/core/domain/events"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type telegramSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramSink posts a short text to the operations chat. Only cancellations and
// deliveries are sent; the rest would flood the chat.
type TelegramSink struct {
	bot    telegramSender
	chatID int64
}

// NewTelegramSink creates a sink posting to chatID. The token is checked against the Bot API.
func NewTelegramSink(token string, chatID int64) (*TelegramSink, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	return &TelegramSink{bot: bot, chatID: chatID}, nil
}

func (s *TelegramSink) Name() string { return "telegram" }

// Deliver posts a message for delivered and cancelled orders and ignores other events.
func (s *TelegramSink) Deliver(_ context.Context, event events.Event) error {
	switch event.(type) {
	case events.OrderCancelled, events.OrderDelivered:
	default:
		return nil
	}

	msg := tgbotapi.NewMessage(s.chatID, describe(event))
	msg.DisableWebPagePreview = true
	if _, err := s.bot.Send(msg); err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	return nil
}
