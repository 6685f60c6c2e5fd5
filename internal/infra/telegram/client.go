// internal/infra/telegram/client.go
package telegram

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
	"gopkg.in/telebot.v3"
)

// DeliveryError reports a failed message send, wrapping the bot library's
// underlying error. Delivery failures are never escalated past the poller.
type DeliveryError struct {
	ChatID int64
	Err    error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("notification delivery to chat %d failed: %v", e.ChatID, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

// TelebotAdapter implements the Client interface using the gopkg.in/telebot.v3 library.
// A limiter keeps sends within Telegram's per-chat rate (one message per second).
type TelebotAdapter struct {
	bot     *telebot.Bot
	limiter *rate.Limiter
}

func NewTelebotAdapter(b *telebot.Bot) *TelebotAdapter {
	return &TelebotAdapter{
		bot:     b,
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
	}
}

// SendMessage sends a text message to the specified recipient.
func (tba *TelebotAdapter) SendMessage(ctx context.Context, recipientChatID int64, text string, options *telebot.SendOptions) error {
	if options == nil {
		options = &telebot.SendOptions{}
	}

	if err := tba.limiter.Wait(ctx); err != nil {
		return &DeliveryError{ChatID: recipientChatID, Err: err}
	}

	recipient := &telebot.Chat{ID: recipientChatID}
	if _, err := tba.bot.Send(recipient, text, options); err != nil {
		return &DeliveryError{ChatID: recipientChatID, Err: err}
	}
	return nil
}
