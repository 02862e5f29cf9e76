package service

import (
	"whale-watcher/config"
	"whale-watcher/internal/repository"
	"whale-watcher/pkg/cache"
	"whale-watcher/pkg/logger"
	"whale-watcher/pkg/mailer"
	"whale-watcher/pkg/telegram"

	"gopkg.in/telebot.v3"
)

type Service struct {
	EngineService    *EngineService
	SchedulerService SchedulerService
}

// NewService wires the evaluation engine and its schedule. The mailer and
// bot are nil when their channel is disabled; disabled channels simply get
// no dispatcher.
func NewService(
	cfg *config.Config,
	log *logger.Logger,
	repo *repository.Repository,
	inmemoryCache cache.Cache,
	m mailer.Mailer,
	bot *telebot.Bot,
) *Service {
	var alertDispatchers, htmlDispatchers []Dispatcher
	if m != nil {
		email := NewEmailDispatcher(m)
		alertDispatchers = append(alertDispatchers, email)
		htmlDispatchers = append(htmlDispatchers, email)
	}
	if bot != nil {
		sender := telegram.NewRateLimitedSender(log, bot)
		alertDispatchers = append(alertDispatchers, NewTelegramDispatcher(sender, cfg.Telegram.ChatID))
	}

	engine := NewEngineService(cfg, log, inmemoryCache, repo, alertDispatchers, htmlDispatchers)

	return &Service{
		EngineService:    engine,
		SchedulerService: NewSchedulerService(cfg, log, engine),
	}
}
