package common

const (
	KEY_QUOTE_CACHE     = "quote:%s"
	KEY_NEWS_CACHE      = "news:%s"
	KEY_IMMEDIATE_ALERT = "immediate_alert:%s:%s"
)
