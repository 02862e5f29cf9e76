package repository

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"whale-watcher/config"
	"whale-watcher/internal/dto"
	"whale-watcher/internal/model"
	"whale-watcher/pkg/cache"
	"whale-watcher/pkg/common"
	"whale-watcher/pkg/httpclient"
	"whale-watcher/pkg/logger"

	"golang.org/x/time/rate"
)

const alphaVantageDateLayout = "2006-01-02"

type alphaVantageRepository struct {
	httpClient     httpclient.HTTPClient
	cfg            *config.Config
	inmemoryCache  cache.Cache
	logger         *logger.Logger
	requestLimiter *rate.Limiter
}

// NewAlphaVantageRepository builds the equity quote provider. The free tier
// caps requests per minute, so every call goes through a shared limiter
// instead of the fixed sleeps the naive approach needs.
func NewAlphaVantageRepository(cfg *config.Config, inmemoryCache cache.Cache, log *logger.Logger) QuoteRepository {
	secondsPerRequest := time.Minute / time.Duration(cfg.AlphaVantage.MaxRequestPerMin)

	return &alphaVantageRepository{
		httpClient:     httpclient.New(cfg.AlphaVantage.BaseURL, cfg.AlphaVantage.Timeout),
		cfg:            cfg,
		inmemoryCache:  inmemoryCache,
		logger:         log,
		requestLimiter: rate.NewLimiter(rate.Every(secondsPerRequest), 1),
	}
}

func (r *alphaVantageRepository) Fetch(ctx context.Context, symbol string) (*model.MarketSnapshot, error) {
	cacheKey := fmt.Sprintf(common.KEY_QUOTE_CACHE, symbol)
	if cached, ok := cache.GetTyped[*model.MarketSnapshot](r.inmemoryCache, cacheKey); ok {
		return cached, nil
	}

	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, &model.FetchError{Symbol: symbol, Err: err}
	}

	queryParams := map[string]string{
		"function": "TIME_SERIES_DAILY",
		"symbol":   symbol,
		"apikey":   r.cfg.AlphaVantage.APIKey,
	}

	var avResp dto.AlphaVantageDailyResponse
	resp, err := r.httpClient.Get(ctx, "/query", queryParams, nil, &avResp)
	if err != nil {
		return nil, &model.FetchError{Symbol: symbol, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &model.FetchError{Symbol: symbol, Err: fmt.Errorf("alpha vantage returned status %d", resp.StatusCode)}
	}
	if avResp.ErrorMsg != "" {
		return nil, &model.FetchError{Symbol: symbol, Err: fmt.Errorf("alpha vantage error: %s", avResp.ErrorMsg)}
	}
	if len(avResp.TimeSeries) == 0 {
		// A Note/Information body without a time series means the daily
		// request budget ran out.
		note := avResp.Note
		if note == "" {
			note = avResp.Information
		}
		return nil, &model.FetchError{Symbol: symbol, Err: fmt.Errorf("no time series returned: %s", note)}
	}

	snapshot, err := r.toSnapshot(symbol, avResp.TimeSeries)
	if err != nil {
		return nil, &model.FetchError{Symbol: symbol, Err: err}
	}

	r.inmemoryCache.Set(cacheKey, snapshot, r.cfg.Cache.DefaultExpiration)
	return snapshot, nil
}

func (r *alphaVantageRepository) toSnapshot(symbol string, series map[string]dto.AlphaVantageCandle) (*model.MarketSnapshot, error) {
	dates := make([]string, 0, len(series))
	for date := range series {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	history := make([]model.Candle, 0, len(dates))
	for _, date := range dates {
		raw := series[date]
		day, err := time.Parse(alphaVantageDateLayout, date)
		if err != nil {
			return nil, fmt.Errorf("parse date %q: %w", date, err)
		}
		candle, err := parseCandle(day, raw)
		if err != nil {
			return nil, err
		}
		history = append(history, candle)
	}

	latest := history[len(history)-1]
	return &model.MarketSnapshot{
		Symbol:       symbol,
		LatestPrice:  latest.Close,
		LatestVolume: latest.Volume,
		History:      history,
	}, nil
}

func parseCandle(day time.Time, raw dto.AlphaVantageCandle) (model.Candle, error) {
	open, err := strconv.ParseFloat(raw.Open, 64)
	if err != nil {
		return model.Candle{}, fmt.Errorf("parse open %q: %w", raw.Open, err)
	}
	high, err := strconv.ParseFloat(raw.High, 64)
	if err != nil {
		return model.Candle{}, fmt.Errorf("parse high %q: %w", raw.High, err)
	}
	low, err := strconv.ParseFloat(raw.Low, 64)
	if err != nil {
		return model.Candle{}, fmt.Errorf("parse low %q: %w", raw.Low, err)
	}
	closePrice, err := strconv.ParseFloat(raw.Close, 64)
	if err != nil {
		return model.Candle{}, fmt.Errorf("parse close %q: %w", raw.Close, err)
	}
	volume, err := strconv.ParseInt(raw.Volume, 10, 64)
	if err != nil {
		return model.Candle{}, fmt.Errorf("parse volume %q: %w", raw.Volume, err)
	}

	return model.Candle{
		Date:   day,
		Open:   open,
		High:   high,
		Low:    low,
		Close:  closePrice,
		Volume: volume,
	}, nil
}
