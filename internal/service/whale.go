package service

import (
	"strings"

	"whale-watcher/internal/model"
)

// WhaleDetector scans news items for institutional-actor keywords. It is
// independent of price signals: a match only augments the symbol's notes
// and produces its own journal entry, never a different signal kind.
type WhaleDetector struct {
	keywords []string
}

func NewWhaleDetector(keywords []string) *WhaleDetector {
	return &WhaleDetector{keywords: keywords}
}

// Scan returns the distinct keywords mentioned across the items, in
// configured keyword order. Matching is case-insensitive over title and
// summary. No news means no matches; that is never an error.
func (d *WhaleDetector) Scan(items []model.NewsItem) []string {
	if len(items) == 0 {
		return nil
	}

	var matched []string
	for _, keyword := range d.keywords {
		needle := strings.ToLower(keyword)
		for _, item := range items {
			haystack := strings.ToLower(item.Title + " " + item.Summary)
			if strings.Contains(haystack, needle) {
				matched = append(matched, keyword)
				break
			}
		}
	}
	return matched
}

// Note renders the matched keywords as the WHALE_MENTION annotation, or ""
// when nothing matched.
func (d *WhaleDetector) Note(matched []string) string {
	if len(matched) == 0 {
		return ""
	}
	return "whale mention: " + strings.Join(matched, ", ")
}
