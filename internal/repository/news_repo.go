package repository

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"whale-watcher/config"
	"whale-watcher/internal/dto"
	"whale-watcher/internal/model"
	"whale-watcher/pkg/cache"
	"whale-watcher/pkg/common"
	"whale-watcher/pkg/httpclient"
	"whale-watcher/pkg/logger"
)

const newsTimeLayout = "20060102T150405"

// NewsRepository supplies recent news items for a symbol. An empty slice
// means no data; that is not an error.
type NewsRepository interface {
	FetchNews(ctx context.Context, symbol string) ([]model.NewsItem, error)
}

type alphaVantageNewsRepository struct {
	httpClient    httpclient.HTTPClient
	cfg           *config.Config
	inmemoryCache cache.Cache
	logger        *logger.Logger
}

func NewAlphaVantageNewsRepository(cfg *config.Config, inmemoryCache cache.Cache, log *logger.Logger) NewsRepository {
	return &alphaVantageNewsRepository{
		httpClient:    httpclient.New(cfg.AlphaVantage.BaseURL, cfg.AlphaVantage.Timeout),
		cfg:           cfg,
		inmemoryCache: inmemoryCache,
		logger:        log,
	}
}

func (r *alphaVantageNewsRepository) FetchNews(ctx context.Context, symbol string) ([]model.NewsItem, error) {
	// The news feed only covers equities.
	if r.cfg.IsCrypto(symbol) {
		return nil, nil
	}

	cacheKey := fmt.Sprintf(common.KEY_NEWS_CACHE, symbol)
	if cached, ok := cache.GetTyped[[]model.NewsItem](r.inmemoryCache, cacheKey); ok {
		return cached, nil
	}

	queryParams := map[string]string{
		"function": "NEWS_SENTIMENT",
		"tickers":  symbol,
		"apikey":   r.cfg.AlphaVantage.APIKey,
		"limit":    fmt.Sprintf("%d", r.cfg.News.Limit),
	}

	var newsResp dto.AlphaVantageNewsResponse
	resp, err := r.httpClient.Get(ctx, "/query", queryParams, nil, &newsResp)
	if err != nil {
		return nil, &model.FetchError{Symbol: symbol, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &model.FetchError{Symbol: symbol, Err: fmt.Errorf("news feed returned status %d", resp.StatusCode)}
	}

	maxAge := time.Duration(r.cfg.News.MaxAgeDays) * 24 * time.Hour
	cutoff := time.Now().Add(-maxAge)

	items := make([]model.NewsItem, 0, len(newsResp.Feed))
	for _, feedItem := range newsResp.Feed {
		publishedAt, err := time.Parse(newsTimeLayout, feedItem.TimePublished)
		if err != nil {
			r.logger.DebugContext(ctx, "Skipping news item with bad timestamp",
				logger.StringField("symbol", symbol),
				logger.StringField("time_published", feedItem.TimePublished),
			)
			continue
		}
		if publishedAt.Before(cutoff) {
			continue
		}
		items = append(items, model.NewsItem{
			Title:       feedItem.Title,
			Summary:     feedItem.Summary,
			Source:      feedItem.Source,
			PublishedAt: publishedAt,
		})
	}

	r.inmemoryCache.Set(cacheKey, items, r.cfg.Cache.DefaultExpiration)
	return items, nil
}
