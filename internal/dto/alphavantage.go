package dto

// Alpha Vantage TIME_SERIES_DAILY response. Numeric fields arrive as
// strings and are parsed in the repository.
type AlphaVantageDailyResponse struct {
	MetaData    AlphaVantageMetaData          `json:"Meta Data"`
	TimeSeries  map[string]AlphaVantageCandle `json:"Time Series (Daily)"`
	Note        string                        `json:"Note"`
	Information string                        `json:"Information"`
	ErrorMsg    string                        `json:"Error Message"`
}

type AlphaVantageMetaData struct {
	Symbol        string `json:"2. Symbol"`
	LastRefreshed string `json:"3. Last Refreshed"`
}

type AlphaVantageCandle struct {
	Open   string `json:"1. open"`
	High   string `json:"2. high"`
	Low    string `json:"3. low"`
	Close  string `json:"4. close"`
	Volume string `json:"5. volume"`
}

// Alpha Vantage NEWS_SENTIMENT response.
type AlphaVantageNewsResponse struct {
	Feed []AlphaVantageNewsItem `json:"feed"`
}

type AlphaVantageNewsItem struct {
	Title         string `json:"title"`
	Summary       string `json:"summary"`
	Source        string `json:"source"`
	TimePublished string `json:"time_published"`
}
