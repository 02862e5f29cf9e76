package service

import (
	"context"
	"fmt"

	"whale-watcher/config"
	"whale-watcher/pkg/logger"

	"github.com/robfig/cron/v3"
)

type SchedulerService interface {
	Start(ctx context.Context) error
	Stop()
}

// schedulerService runs the recurring evaluation passes: the twice-daily
// digest run and the weekly summary run. Overlapping runs are skipped, not
// queued.
type schedulerService struct {
	cfg    *config.Config
	log    *logger.Logger
	engine *EngineService
	cron   *cron.Cron
}

func NewSchedulerService(cfg *config.Config, log *logger.Logger, engine *EngineService) SchedulerService {
	return &schedulerService{
		cfg:    cfg,
		log:    log,
		engine: engine,
		cron:   cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
	}
}

func (s *schedulerService) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.cfg.Scheduler.DigestCron, s.runFunc(ctx, RunModeDigest)); err != nil {
		return fmt.Errorf("register digest schedule %q: %w", s.cfg.Scheduler.DigestCron, err)
	}
	if _, err := s.cron.AddFunc(s.cfg.Scheduler.WeeklyCron, s.runFunc(ctx, RunModeWeekly)); err != nil {
		return fmt.Errorf("register weekly schedule %q: %w", s.cfg.Scheduler.WeeklyCron, err)
	}

	s.cron.Start()
	s.log.InfoContext(ctx, "scheduler started",
		logger.StringField("digest_cron", s.cfg.Scheduler.DigestCron),
		logger.StringField("weekly_cron", s.cfg.Scheduler.WeeklyCron),
	)
	return nil
}

func (s *schedulerService) runFunc(ctx context.Context, mode RunMode) func() {
	return func() {
		if err := s.engine.Run(ctx, mode); err != nil {
			s.log.ErrorContext(ctx, "scheduled run failed",
				logger.StringField("mode", string(mode)),
				logger.ErrorField(err),
			)
		}
	}
}

// Stop halts the schedule and waits for any in-flight run to finish.
func (s *schedulerService) Stop() {
	<-s.cron.Stop().Done()
}
