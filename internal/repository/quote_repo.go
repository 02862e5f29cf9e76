package repository

import (
	"context"

	"whale-watcher/config"
	"whale-watcher/internal/model"
)

// QuoteRepository supplies OHLCV history plus the latest tick for one
// symbol. Failures surface as *model.FetchError so the engine can degrade
// the symbol instead of aborting the run.
type QuoteRepository interface {
	Fetch(ctx context.Context, symbol string) (*model.MarketSnapshot, error)
}

// routingQuoteRepository dispatches each symbol to the provider that tracks
// it: CoinGecko for configured crypto ids, Alpha Vantage for everything
// else.
type routingQuoteRepository struct {
	cfg      *config.Config
	equities QuoteRepository
	crypto   QuoteRepository
}

func NewRoutingQuoteRepository(cfg *config.Config, equities, crypto QuoteRepository) QuoteRepository {
	return &routingQuoteRepository{
		cfg:      cfg,
		equities: equities,
		crypto:   crypto,
	}
}

func (r *routingQuoteRepository) Fetch(ctx context.Context, symbol string) (*model.MarketSnapshot, error) {
	if r.cfg.IsCrypto(symbol) {
		return r.crypto.Fetch(ctx, symbol)
	}
	return r.equities.Fetch(ctx, symbol)
}
