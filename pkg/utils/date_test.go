package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name string
		from time.Time
		to   time.Time
		want int
	}{
		{
			name: "same moment",
			from: time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC),
			to:   time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC),
			want: 0,
		},
		{
			name: "same day different hours",
			from: time.Date(2026, 3, 15, 1, 0, 0, 0, time.UTC),
			to:   time.Date(2026, 3, 15, 23, 0, 0, 0, time.UTC),
			want: 0,
		},
		{
			name: "midnight rollover counts one day",
			from: time.Date(2026, 3, 14, 23, 50, 0, 0, time.UTC),
			to:   time.Date(2026, 3, 15, 0, 10, 0, 0, time.UTC),
			want: 1,
		},
		{
			name: "hundred days",
			from: time.Date(2025, 12, 5, 12, 0, 0, 0, time.UTC),
			to:   time.Date(2026, 3, 15, 6, 0, 0, 0, time.UTC),
			want: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysBetween(tt.from, tt.to))
		})
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2026, 3, 15, 1, 0, 0, 0, time.UTC)
	b := time.Date(2026, 3, 15, 23, 59, 0, 0, time.UTC)
	c := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)

	assert.True(t, SameDay(a, b))
	assert.False(t, SameDay(a, c))
}

func TestPrettyDate(t *testing.T) {
	ts := time.Date(2026, 3, 15, 8, 5, 0, 0, time.UTC)
	assert.Equal(t, "2026-03-15 08:05", PrettyDate(ts))
}
