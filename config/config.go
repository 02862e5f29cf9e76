package config

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"whale-watcher/internal/model"
	"whale-watcher/pkg/utils"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Log             Logger                    `mapstructure:"logger"`
	API             API                       `mapstructure:"api"`
	AlphaVantage    AlphaVantage              `mapstructure:"alphavantage"`
	CoinGecko       CoinGecko                 `mapstructure:"coingecko"`
	News            News                      `mapstructure:"news"`
	Cache           Cache                     `mapstructure:"cache"`
	Thresholds      Thresholds                `mapstructure:"thresholds"`
	Watchlist       []string                  `mapstructure:"watchlist"`
	CryptoWatchlist []string                  `mapstructure:"crypto_watchlist"`
	Portfolio       map[string]PortfolioEntry `mapstructure:"portfolio"`
	WhaleKeywords   []string                  `mapstructure:"whale_keywords"`
	Journal         Journal                   `mapstructure:"journal"`
	Snapshot        Snapshot                  `mapstructure:"snapshot"`
	Email           Email                     `mapstructure:"email"`
	Telegram        TelegramConfig            `mapstructure:"telegram"`
	Scheduler       Scheduler                 `mapstructure:"scheduler"`
}

type Logger struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

type API struct {
	Port int `mapstructure:"port"`
}

type AlphaVantage struct {
	APIKey           string        `mapstructure:"api_key"`
	BaseURL          string        `mapstructure:"base_url"`
	Timeout          time.Duration `mapstructure:"timeout"`
	MaxRequestPerMin int           `mapstructure:"max_request_per_min" validate:"gt=0"`
}

type CoinGecko struct {
	BaseURL     string        `mapstructure:"base_url"`
	Timeout     time.Duration `mapstructure:"timeout"`
	HistoryDays int           `mapstructure:"history_days" validate:"gt=1"`
}

type News struct {
	MaxAgeDays int `mapstructure:"max_age_days"`
	Limit      int `mapstructure:"limit"`
}

type Cache struct {
	DefaultExpiration time.Duration `mapstructure:"default_expiration"`
	CleanupInterval   time.Duration `mapstructure:"cleanup_interval"`
}

// Thresholds carries every knob that affects classification. Nothing else
// does.
type Thresholds struct {
	ProfitTargetPct      float64 `mapstructure:"profit_target_pct" validate:"gt=0"`
	StopLossPct          float64 `mapstructure:"stop_loss_pct" validate:"lt=0"`
	LongTermDays         int     `mapstructure:"long_term_days" validate:"gt=0"`
	TaxWarningDays       int     `mapstructure:"tax_warning_days" validate:"gte=0"`
	SettlingPeriodDays   int     `mapstructure:"settling_period_days" validate:"gte=0"`
	RSIOverbought        float64 `mapstructure:"rsi_overbought" validate:"gt=0,lt=100"`
	RSIOversold          float64 `mapstructure:"rsi_oversold" validate:"gt=0,lt=100"`
	RSIExtremeOverbought float64 `mapstructure:"rsi_extreme_overbought" validate:"gt=0,lt=100"`
	RSIExtremeOversold   float64 `mapstructure:"rsi_extreme_oversold" validate:"gt=0,lt=100"`
	VolumeEruptionRatio  float64 `mapstructure:"volume_eruption_ratio" validate:"gt=0"`
	VolumeActiveRatio    float64 `mapstructure:"volume_active_ratio" validate:"gt=0"`
	BreakingNewsPct      float64 `mapstructure:"breaking_news_pct" validate:"gt=0"`
	RSIPeriod            int     `mapstructure:"rsi_period" validate:"gt=1"`
	VolumeAvgPeriod      int     `mapstructure:"volume_avg_period" validate:"gt=0"`
	TrendMAPeriod        int     `mapstructure:"trend_ma_period" validate:"gt=0"`
	TrendEpsilonPct      float64 `mapstructure:"trend_epsilon_pct" validate:"gte=0"`
}

// PortfolioEntry is one owned position as configured. EntryDate uses the
// YYYY-MM-DD layout; EntryPrice 0 would mean watch-only, so entries listed
// here must carry a positive price.
type PortfolioEntry struct {
	EntryPrice float64 `mapstructure:"entry_price"`
	EntryDate  string  `mapstructure:"entry_date"`
}

type Journal struct {
	Path string `mapstructure:"path"`
}

type Snapshot struct {
	Path string `mapstructure:"path"`
}

type Email struct {
	Enabled   bool   `mapstructure:"enabled"`
	SMTPHost  string `mapstructure:"smtp_host"`
	SMTPPort  int    `mapstructure:"smtp_port"`
	Sender    string `mapstructure:"sender"`
	Password  string `mapstructure:"password"`
	Recipient string `mapstructure:"recipient"`
}

type TelegramConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

type Scheduler struct {
	DigestCron string `mapstructure:"digest_cron"`
	WeeklyCron string `mapstructure:"weekly_cron"`
}

const entryDateLayout = "2006-01-02"

func Load() (*Config, error) {
	// .env is optional; real deployments inject env vars directly.
	_ = godotenv.Load()

	viper.SetConfigType("yaml")
	viper.SetConfigName("config")
	viper.AddConfigPath(".")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, &model.ConfigurationError{Field: "config", Err: err}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.encoding", "json")
	viper.SetDefault("api.port", 8080)

	viper.SetDefault("alphavantage.base_url", "https://www.alphavantage.co")
	viper.SetDefault("alphavantage.timeout", "15s")
	// The free tier allows 5 requests per minute.
	viper.SetDefault("alphavantage.max_request_per_min", 5)

	viper.SetDefault("coingecko.base_url", "https://api.coingecko.com/api/v3")
	viper.SetDefault("coingecko.timeout", "15s")
	viper.SetDefault("coingecko.history_days", 60)

	viper.SetDefault("news.max_age_days", 3)
	viper.SetDefault("news.limit", 10)

	viper.SetDefault("cache.default_expiration", "10m")
	viper.SetDefault("cache.cleanup_interval", "30m")

	viper.SetDefault("thresholds.profit_target_pct", 20.0)
	viper.SetDefault("thresholds.stop_loss_pct", -8.0)
	viper.SetDefault("thresholds.long_term_days", 365)
	viper.SetDefault("thresholds.tax_warning_days", 30)
	viper.SetDefault("thresholds.settling_period_days", 3)
	viper.SetDefault("thresholds.rsi_overbought", 70.0)
	viper.SetDefault("thresholds.rsi_oversold", 30.0)
	viper.SetDefault("thresholds.rsi_extreme_overbought", 85.0)
	viper.SetDefault("thresholds.rsi_extreme_oversold", 15.0)
	viper.SetDefault("thresholds.volume_eruption_ratio", 3.5)
	viper.SetDefault("thresholds.volume_active_ratio", 1.5)
	viper.SetDefault("thresholds.breaking_news_pct", 10.0)
	viper.SetDefault("thresholds.rsi_period", 14)
	viper.SetDefault("thresholds.volume_avg_period", 20)
	viper.SetDefault("thresholds.trend_ma_period", 20)
	viper.SetDefault("thresholds.trend_epsilon_pct", 0.25)

	viper.SetDefault("journal.path", "data/trade_journal.csv")
	viper.SetDefault("snapshot.path", "data/dashboard_snapshot.json")

	viper.SetDefault("scheduler.digest_cron", "0 8,20 * * *")
	viper.SetDefault("scheduler.weekly_cron", "0 8 * * 1")

	viper.SetDefault("whale_keywords", []string{
		"BlackRock",
		"Vanguard",
		"Berkshire",
		"Citadel",
		"sovereign wealth",
		"sovereign fund",
		"hedge fund",
		"activist investor",
		"institutional investors",
		"SoftBank",
		"Elliott Management",
	})
}

// Validate rejects malformed thresholds and portfolio entries before any
// evaluation runs.
func (c *Config) Validate() error {
	validate := goValidator.New()
	if err := validate.Struct(c.Thresholds); err != nil {
		return &model.ConfigurationError{Field: "thresholds", Err: err}
	}
	if err := validate.Struct(c.AlphaVantage); err != nil {
		return &model.ConfigurationError{Field: "alphavantage", Err: err}
	}
	if err := validate.Struct(c.CoinGecko); err != nil {
		return &model.ConfigurationError{Field: "coingecko", Err: err}
	}

	if len(c.Watchlist)+len(c.CryptoWatchlist) == 0 {
		return &model.ConfigurationError{Field: "watchlist", Err: fmt.Errorf("no symbols configured")}
	}

	for symbol, entry := range c.Portfolio {
		if entry.EntryPrice <= 0 {
			return &model.ConfigurationError{
				Field: "portfolio." + symbol,
				Err:   fmt.Errorf("entry_price must be positive, got %v", entry.EntryPrice),
			}
		}
		if _, err := time.Parse(entryDateLayout, entry.EntryDate); err != nil {
			return &model.ConfigurationError{
				Field: "portfolio." + symbol,
				Err:   fmt.Errorf("entry_date %q: %w", entry.EntryDate, err),
			}
		}
	}

	return nil
}

// Positions resolves the configured watchlists into the per-run position
// set, in configured order: equities first, then crypto. Symbols present in
// the portfolio map become owned positions; everything else is watch-only.
func (c *Config) Positions() ([]model.Position, error) {
	symbols := make([]string, 0, len(c.Watchlist)+len(c.CryptoWatchlist)+len(c.Portfolio))
	symbols = append(symbols, c.Watchlist...)
	symbols = append(symbols, c.CryptoWatchlist...)

	// Owned symbols are tracked even when left off the watchlists. Sorted
	// so the run order stays deterministic.
	var extras []string
	for symbol := range c.Portfolio {
		if !utils.ContainsString(symbols, symbol) {
			extras = append(extras, symbol)
		}
	}
	sort.Strings(extras)
	symbols = append(symbols, extras...)

	positions := make([]model.Position, 0, len(symbols))
	for _, symbol := range symbols {
		pos := model.Position{Symbol: symbol}
		if entry, ok := c.Portfolio[symbol]; ok {
			entryDate, err := time.Parse(entryDateLayout, entry.EntryDate)
			if err != nil {
				return nil, &model.ConfigurationError{
					Field: "portfolio." + symbol,
					Err:   fmt.Errorf("entry_date %q: %w", entry.EntryDate, err),
				}
			}
			pos.EntryPrice = entry.EntryPrice
			pos.EntryDate = entryDate
		}
		positions = append(positions, pos)
	}
	return positions, nil
}

// IsCrypto reports whether the symbol belongs to the crypto watchlist and
// should be routed to the CoinGecko provider.
func (c *Config) IsCrypto(symbol string) bool {
	for _, id := range c.CryptoWatchlist {
		if id == symbol {
			return true
		}
	}
	return false
}
