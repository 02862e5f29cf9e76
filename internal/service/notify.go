package service

import (
	"context"
	"strconv"

	"whale-watcher/internal/model"
	"whale-watcher/pkg/mailer"
	"whale-watcher/pkg/telegram"

	"gopkg.in/telebot.v3"
)

// Message is one composed notification. The engine decides whether a
// message fires and what it contains; dispatchers only deliver it.
type Message struct {
	Subject string
	Body    string
}

type Dispatcher interface {
	Name() string
	Dispatch(ctx context.Context, msg Message) error
}

type emailDispatcher struct {
	mailer mailer.Mailer
}

func NewEmailDispatcher(m mailer.Mailer) Dispatcher {
	return &emailDispatcher{mailer: m}
}

func (d *emailDispatcher) Name() string { return "email" }

func (d *emailDispatcher) Dispatch(ctx context.Context, msg Message) error {
	if err := d.mailer.Send(msg.Subject, msg.Body); err != nil {
		return &model.DispatchError{Channel: d.Name(), Err: err}
	}
	return nil
}

type telegramDispatcher struct {
	sender *telegram.RateLimitedSender
	chatID int64
}

func NewTelegramDispatcher(sender *telegram.RateLimitedSender, chatID int64) Dispatcher {
	return &telegramDispatcher{sender: sender, chatID: chatID}
}

func (d *telegramDispatcher) Name() string { return "telegram" }

func (d *telegramDispatcher) Dispatch(ctx context.Context, msg Message) error {
	text := "<b>" + msg.Subject + "</b>\n\n" + msg.Body
	if err := d.sender.SendMessage(ctx, d.chatID, text, telebot.ModeHTML); err != nil {
		return &model.DispatchError{Channel: d.Name() + ":" + strconv.FormatInt(d.chatID, 10), Err: err}
	}
	return nil
}
