package dto

// CoinGecko market_chart response: [timestamp_ms, value] pairs, oldest
// first, one point per day at daily granularity.
type CoinGeckoMarketChartResponse struct {
	Prices       [][2]float64 `json:"prices"`
	MarketCaps   [][2]float64 `json:"market_caps"`
	TotalVolumes [][2]float64 `json:"total_volumes"`
}
