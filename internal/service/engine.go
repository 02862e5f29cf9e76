package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"whale-watcher/config"
	"whale-watcher/internal/model"
	"whale-watcher/internal/repository"
	"whale-watcher/pkg/cache"
	"whale-watcher/pkg/common"
	"whale-watcher/pkg/logger"
	"whale-watcher/pkg/utils"

	"golang.org/x/sync/errgroup"
)

// RunMode selects which notification classes a run may emit. Every mode
// evaluates all symbols and publishes journal and snapshot; modes only
// widen the set of reports sent afterwards.
type RunMode string

const (
	RunModeOnce   RunMode = "once"
	RunModeDigest RunMode = "digest"
	RunModeWeekly RunMode = "weekly"
)

const (
	maxConcurrentFetches = 4
	// One critical alert per symbol and kind inside this window; repeats
	// are suppressed until the condition clears or the window expires.
	immediateAlertTTL = 4 * time.Hour
)

// EngineService runs one full evaluation pass: fetch, compute, classify,
// journal, snapshot, notify.
type EngineService struct {
	cfg        *config.Config
	log        *logger.Logger
	inmemory   cache.Cache
	repo       *repository.Repository
	indicators *IndicatorCalculator
	tracker    *PositionTracker
	classifier *SignalClassifier
	whales     *WhaleDetector
	reports    *ReportBuilder

	// alertDispatchers receive the compact immediate alert; htmlDispatchers
	// receive the HTML digest and weekly reports.
	alertDispatchers []Dispatcher
	htmlDispatchers  []Dispatcher
}

func NewEngineService(
	cfg *config.Config,
	log *logger.Logger,
	inmemory cache.Cache,
	repo *repository.Repository,
	alertDispatchers []Dispatcher,
	htmlDispatchers []Dispatcher,
) *EngineService {
	return &EngineService{
		cfg:              cfg,
		log:              log,
		inmemory:         inmemory,
		repo:             repo,
		indicators:       NewIndicatorCalculator(cfg.Thresholds),
		tracker:          NewPositionTracker(cfg.Thresholds),
		classifier:       NewSignalClassifier(cfg.Thresholds),
		whales:           NewWhaleDetector(cfg.WhaleKeywords),
		reports:          NewReportBuilder(),
		alertDispatchers: alertDispatchers,
		htmlDispatchers:  htmlDispatchers,
	}
}

// fetchResult pairs one position with the market data gathered for it.
// News is best effort; a news failure never fails the symbol.
type fetchResult struct {
	position model.Position
	market   *model.MarketSnapshot
	news     []model.NewsItem
	err      error
}

// Run executes one evaluation pass. A failing symbol degrades to a stale
// report; only configuration and publish failures abort the run.
func (s *EngineService) Run(ctx context.Context, mode RunMode) error {
	runAt := time.Now()
	log := s.log.With(logger.StringField("mode", string(mode)))
	log.InfoContext(ctx, "evaluation run started")

	positions, err := s.cfg.Positions()
	if err != nil {
		return fmt.Errorf("resolve positions: %w", err)
	}

	prev, err := s.repo.SnapshotRepo.Load()
	if err != nil {
		log.WarnContext(ctx, "previous snapshot unreadable, continuing without it", logger.ErrorField(err))
		prev = nil
	}

	results := s.fetchAll(ctx, positions)

	snapshot := &model.DashboardSnapshot{
		GeneratedAt: runAt,
		Symbols:     make(map[string]model.SymbolReport, len(results)),
	}
	var signals []model.Signal
	var entries []model.JournalEntry

	for _, result := range results {
		report, signal, symbolEntries, ok := s.evaluate(ctx, result, prev, runAt)
		if !ok {
			continue
		}
		snapshot.Symbols[result.position.Symbol] = report
		snapshot.Order = append(snapshot.Order, result.position.Symbol)
		signals = append(signals, signal)
		entries = append(entries, symbolEntries...)
	}

	appended, err := s.repo.JournalRepo.Append(ctx, entries)
	if err != nil {
		return fmt.Errorf("append journal: %w", err)
	}
	log.InfoContext(ctx, "journal updated",
		logger.IntField("candidates", len(entries)),
		logger.IntField("appended", appended),
	)

	if err := s.repo.SnapshotRepo.Save(snapshot); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}

	s.notify(ctx, mode, snapshot, signals)

	log.InfoContext(ctx, "evaluation run finished",
		logger.IntField("symbols", len(snapshot.Order)),
		logger.IntField("signals", len(signals)),
	)
	return nil
}

// fetchAll gathers market data and news for every position concurrently,
// preserving configured order in the returned slice. Per-symbol failures
// land in the result rather than aborting the group.
func (s *EngineService) fetchAll(ctx context.Context, positions []model.Position) []fetchResult {
	results := make([]fetchResult, len(positions))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(maxConcurrentFetches)
	for i, pos := range positions {
		eg.Go(func() error {
			results[i].position = pos
			market, err := s.repo.QuoteRepo.Fetch(egCtx, pos.Symbol)
			if err != nil {
				results[i].err = err
				return nil
			}
			results[i].market = market

			news, err := s.repo.NewsRepo.FetchNews(egCtx, pos.Symbol)
			if err != nil {
				s.log.WarnContext(egCtx, "news fetch failed, skipping whale scan",
					logger.StringField("symbol", pos.Symbol),
					logger.ErrorField(err),
				)
			} else {
				results[i].news = news
			}
			return nil
		})
	}
	// Goroutines never return errors; Wait only fences completion.
	_ = eg.Wait()

	return results
}

// evaluate turns one fetch result into a symbol report, its signal, and
// the journal entries it produced. ok is false when the symbol must be
// dropped from this run entirely.
func (s *EngineService) evaluate(ctx context.Context, result fetchResult, prev *model.DashboardSnapshot, runAt time.Time) (model.SymbolReport, model.Signal, []model.JournalEntry, bool) {
	symbol := result.position.Symbol

	indicators := model.Indicators{}
	computeErr := result.err
	if computeErr == nil {
		indicators, computeErr = s.indicators.Compute(result.market)
	}
	if computeErr != nil {
		return s.staleReport(ctx, symbol, prev, computeErr, runAt)
	}

	var (
		signal model.Signal
		report = model.SymbolReport{
			Price:       result.market.LatestPrice,
			Volume:      result.market.LatestVolume,
			RSI:         indicators.RSI,
			VolumeRatio: indicators.VolumeRatio,
			PctChange1D: indicators.PctChange1D,
			Trend:       indicators.Trend,
		}
	)

	if result.position.Owned() {
		state := s.tracker.Track(result.position, result.market.LatestPrice, runAt)
		signal = s.classifier.ClassifyOwned(symbol, state, runAt)
		report.HoldingDays = utils.ToPointer(state.HoldingDays)
		report.GainLossPct = utils.ToPointer(state.GainLossPct)
		report.Phase = utils.ToPointer(string(state.Phase))
	} else {
		signal = s.classifier.ClassifyWatch(symbol, indicators, runAt)
	}

	var entries []model.JournalEntry
	if matched := s.whales.Scan(result.news); len(matched) > 0 {
		note := s.whales.Note(matched)
		if signal.Notes != "" {
			signal.Notes += "; " + note
		} else {
			signal.Notes = note
		}
		entries = append(entries, model.JournalEntry{
			Timestamp: runAt,
			Symbol:    symbol,
			Action:    model.SignalWhaleMention,
			Price:     result.market.LatestPrice,
			Notes:     note,
		})
	}

	report.Signal = signal.Kind
	report.Severity = signal.Severity
	report.Notes = signal.Notes

	if signal.Actionable() {
		entry := model.JournalEntry{
			Timestamp: runAt,
			Symbol:    symbol,
			Action:    signal.Kind,
			Price:     result.market.LatestPrice,
			Notes:     signal.Notes,
		}
		if result.position.Owned() {
			entry.EntryPrice = utils.ToPointer(result.position.EntryPrice)
			entry.GainLossPct = report.GainLossPct
			entry.HoldingDays = report.HoldingDays
		}
		entries = append(entries, entry)
	}

	return report, signal, entries, true
}

// staleReport carries the last published values forward for a symbol whose
// data could not be refreshed. Without a previous report the symbol is
// dropped from the run.
func (s *EngineService) staleReport(ctx context.Context, symbol string, prev *model.DashboardSnapshot, cause error, runAt time.Time) (model.SymbolReport, model.Signal, []model.JournalEntry, bool) {
	log := s.log.With(logger.StringField("symbol", symbol))

	var fetchErr *model.FetchError
	if !errors.As(cause, &fetchErr) && !errors.Is(cause, model.ErrInsufficientHistory) {
		log.ErrorContext(ctx, "symbol evaluation failed", logger.ErrorField(cause))
	} else {
		log.WarnContext(ctx, "symbol data unavailable this run", logger.ErrorField(cause))
	}

	if prev == nil {
		return model.SymbolReport{}, model.Signal{}, nil, false
	}
	report, ok := prev.Symbols[symbol]
	if !ok {
		return model.SymbolReport{}, model.Signal{}, nil, false
	}

	report.Signal = model.SignalStale
	report.Severity = model.SeverityInfo
	report.Stale = true
	report.Notes = "carried forward from " + utils.PrettyDate(prev.GeneratedAt)

	signal := model.Signal{
		Symbol:     symbol,
		Kind:       model.SignalStale,
		Severity:   model.SeverityInfo,
		Notes:      report.Notes,
		ComputedAt: runAt,
	}
	return report, signal, nil, true
}

// notify fans the run's outcome out to the configured channels. Delivery
// failures are logged and never fail the run; the journal and snapshot are
// already published by the time this is called.
func (s *EngineService) notify(ctx context.Context, mode RunMode, snapshot *model.DashboardSnapshot, signals []model.Signal) {
	critical := s.unsuppressedCritical(signals)
	if msg, ok := s.reports.Immediate(snapshot.GeneratedAt, critical, snapshot); ok {
		s.dispatch(ctx, s.alertDispatchers, msg)
		for _, signal := range critical {
			key := fmt.Sprintf(common.KEY_IMMEDIATE_ALERT, signal.Symbol, signal.Kind)
			s.inmemory.Set(key, true, immediateAlertTTL)
		}
	}

	if mode == RunModeDigest || mode == RunModeWeekly {
		if msg, ok := s.reports.Digest(snapshot); ok {
			s.dispatch(ctx, s.htmlDispatchers, msg)
		}
	}
	if mode == RunModeWeekly {
		if msg, ok := s.reports.Weekly(snapshot); ok {
			s.dispatch(ctx, s.htmlDispatchers, msg)
		}
	}
}

// unsuppressedCritical filters the critical signals down to those that have
// not already alerted inside the suppression window.
func (s *EngineService) unsuppressedCritical(signals []model.Signal) []model.Signal {
	var critical []model.Signal
	for _, signal := range signals {
		if signal.Severity != model.SeverityCritical {
			continue
		}
		key := fmt.Sprintf(common.KEY_IMMEDIATE_ALERT, signal.Symbol, signal.Kind)
		if _, suppressed := s.inmemory.Get(key); suppressed {
			continue
		}
		critical = append(critical, signal)
	}
	return critical
}

func (s *EngineService) dispatch(ctx context.Context, dispatchers []Dispatcher, msg Message) {
	for _, d := range dispatchers {
		if err := d.Dispatch(ctx, msg); err != nil {
			s.log.ErrorContext(ctx, "notification dispatch failed",
				logger.StringField("channel", d.Name()),
				logger.StringField("subject", msg.Subject),
				logger.ErrorField(err),
			)
		}
	}
}
