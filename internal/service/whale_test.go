package service

import (
	"testing"

	"whale-watcher/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestWhaleDetector_Scan(t *testing.T) {
	detector := NewWhaleDetector([]string{"BlackRock", "Vanguard", "sovereign wealth"})

	tests := []struct {
		name  string
		items []model.NewsItem
		want  []string
	}{
		{
			name: "no news, no matches",
		},
		{
			name: "matching is case insensitive",
			items: []model.NewsItem{
				{Title: "BLACKROCK raises stake in chipmaker"},
			},
			want: []string{"BlackRock"},
		},
		{
			name: "summary counts too",
			items: []model.NewsItem{
				{Title: "Quarterly filings roundup", Summary: "vanguard disclosed a new position"},
			},
			want: []string{"Vanguard"},
		},
		{
			name: "matches stay distinct in configured order",
			items: []model.NewsItem{
				{Title: "Sovereign wealth funds pile in"},
				{Title: "BlackRock follows"},
				{Title: "BlackRock again"},
			},
			want: []string{"BlackRock", "sovereign wealth"},
		},
		{
			name: "unrelated news matches nothing",
			items: []model.NewsItem{
				{Title: "Earnings beat expectations", Summary: "Revenue up 12%"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, detector.Scan(tt.items))
		})
	}
}

func TestWhaleDetector_Note(t *testing.T) {
	detector := NewWhaleDetector(nil)

	assert.Equal(t, "", detector.Note(nil))
	assert.Equal(t, "whale mention: BlackRock", detector.Note([]string{"BlackRock"}))
	assert.Equal(t, "whale mention: BlackRock, Citadel", detector.Note([]string{"BlackRock", "Citadel"}))
}
