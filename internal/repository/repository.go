package repository

import (
	"whale-watcher/config"
	"whale-watcher/pkg/cache"
	"whale-watcher/pkg/logger"
)

type Repository struct {
	QuoteRepo    QuoteRepository
	NewsRepo     NewsRepository
	JournalRepo  JournalRepository
	SnapshotRepo SnapshotRepository
}

func NewRepository(cfg *config.Config, inmemoryCache cache.Cache, log *logger.Logger) (*Repository, error) {
	alphaVantage := NewAlphaVantageRepository(cfg, inmemoryCache, log)
	coinGecko := NewCoinGeckoRepository(cfg, inmemoryCache, log)

	return &Repository{
		QuoteRepo:    NewRoutingQuoteRepository(cfg, alphaVantage, coinGecko),
		NewsRepo:     NewAlphaVantageNewsRepository(cfg, inmemoryCache, log),
		JournalRepo:  NewCSVJournalRepository(cfg.Journal.Path),
		SnapshotRepo: NewFileSnapshotRepository(cfg.Snapshot.Path),
	}, nil
}
