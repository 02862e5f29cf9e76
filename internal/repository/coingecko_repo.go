package repository

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"whale-watcher/config"
	"whale-watcher/internal/dto"
	"whale-watcher/internal/model"
	"whale-watcher/pkg/cache"
	"whale-watcher/pkg/common"
	"whale-watcher/pkg/httpclient"
	"whale-watcher/pkg/logger"
)

type coinGeckoRepository struct {
	httpClient    httpclient.HTTPClient
	cfg           *config.Config
	inmemoryCache cache.Cache
	logger        *logger.Logger
}

// NewCoinGeckoRepository builds the crypto quote provider. Symbols are
// CoinGecko coin ids ("bitcoin", "fetch-ai", ...).
func NewCoinGeckoRepository(cfg *config.Config, inmemoryCache cache.Cache, log *logger.Logger) QuoteRepository {
	return &coinGeckoRepository{
		httpClient:    httpclient.New(cfg.CoinGecko.BaseURL, cfg.CoinGecko.Timeout),
		cfg:           cfg,
		inmemoryCache: inmemoryCache,
		logger:        log,
	}
}

func (r *coinGeckoRepository) Fetch(ctx context.Context, symbol string) (*model.MarketSnapshot, error) {
	cacheKey := fmt.Sprintf(common.KEY_QUOTE_CACHE, symbol)
	if cached, ok := cache.GetTyped[*model.MarketSnapshot](r.inmemoryCache, cacheKey); ok {
		return cached, nil
	}

	endpoint := fmt.Sprintf("/coins/%s/market_chart", symbol)
	queryParams := map[string]string{
		"vs_currency": "usd",
		"days":        strconv.Itoa(r.cfg.CoinGecko.HistoryDays),
		"interval":    "daily",
	}

	var chart dto.CoinGeckoMarketChartResponse
	resp, err := r.httpClient.Get(ctx, endpoint, queryParams, nil, &chart)
	if err != nil {
		return nil, &model.FetchError{Symbol: symbol, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &model.FetchError{Symbol: symbol, Err: fmt.Errorf("coingecko returned status %d", resp.StatusCode)}
	}
	if len(chart.Prices) == 0 {
		return nil, &model.FetchError{Symbol: symbol, Err: fmt.Errorf("no price data for coin id %q", symbol)}
	}

	snapshot := r.toSnapshot(symbol, &chart)
	r.inmemoryCache.Set(cacheKey, snapshot, r.cfg.Cache.DefaultExpiration)
	return snapshot, nil
}

// toSnapshot converts the [ts, value] pair series into daily candles.
// CoinGecko only exposes close prices at daily granularity, so OHLC
// collapses onto the close.
func (r *coinGeckoRepository) toSnapshot(symbol string, chart *dto.CoinGeckoMarketChartResponse) *model.MarketSnapshot {
	history := make([]model.Candle, 0, len(chart.Prices))
	for i, point := range chart.Prices {
		price := point[1]
		var volume int64
		if i < len(chart.TotalVolumes) {
			volume = int64(chart.TotalVolumes[i][1])
		}
		history = append(history, model.Candle{
			Date:   time.UnixMilli(int64(point[0])).UTC(),
			Open:   price,
			High:   price,
			Low:    price,
			Close:  price,
			Volume: volume,
		})
	}

	latest := history[len(history)-1]
	return &model.MarketSnapshot{
		Symbol:       symbol,
		LatestPrice:  latest.Close,
		LatestVolume: latest.Volume,
		History:      history,
	}
}
