package telegram

import (
	"context"

	"whale-watcher/pkg/logger"

	"golang.org/x/time/rate"
	"gopkg.in/telebot.v3"
)

// Telegram allows roughly one message per second per chat; bursts beyond
// that get throttled server-side, so we throttle client-side first.
const (
	messagesPerSecond = 1
	burst             = 3
)

// RateLimitedSender is a send-only wrapper over the bot API. The engine
// writes to a single configured chat, so one limiter covers all sends.
type RateLimitedSender struct {
	log     *logger.Logger
	bot     *telebot.Bot
	limiter *rate.Limiter
}

func NewRateLimitedSender(log *logger.Logger, bot *telebot.Bot) *RateLimitedSender {
	return &RateLimitedSender{
		log:     log,
		bot:     bot,
		limiter: rate.NewLimiter(rate.Limit(messagesPerSecond), burst),
	}
}

func (t *RateLimitedSender) SendMessage(ctx context.Context, chatID int64, message string, opts ...interface{}) error {
	if err := t.limiter.Wait(ctx); err != nil {
		return err
	}
	if _, err := t.bot.Send(&telebot.User{ID: chatID}, message, opts...); err != nil {
		t.log.ErrorContext(ctx, "Failed to send telegram message", logger.ErrorField(err))
		return err
	}
	return nil
}
