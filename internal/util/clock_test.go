package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDayOf(t *testing.T) {
	ts := time.Date(2024, 3, 15, 23, 45, 12, 999, time.UTC)
	day := DayOf(ts)

	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), day)
}

func TestDayOfConvertsToUTC(t *testing.T) {
	// 23:30 on March 15 in UTC-5 is already March 16 in UTC
	loc := time.FixedZone("UTC-5", -5*60*60)
	ts := time.Date(2024, 3, 15, 23, 30, 0, 0, loc)

	assert.Equal(t, time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC), DayOf(ts))
}

func TestDaysBetween(t *testing.T) {
	base := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		a    time.Time
		b    time.Time
		want int
	}{
		{"same instant", base, base, 0},
		{"same day different hours", base, base.Add(13 * time.Hour), 0},
		{"consecutive days", base, base.AddDate(0, 0, 1), 1},
		{"late night to early morning", time.Date(2024, 3, 15, 23, 59, 0, 0, time.UTC), time.Date(2024, 3, 16, 0, 1, 0, 0, time.UTC), 1},
		{"week apart", base, base.AddDate(0, 0, 7), 7},
		{"reversed order", base.AddDate(0, 0, 3), base, -3},
		{"across month boundary", time.Date(2024, 2, 28, 12, 0, 0, 0, time.UTC), time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysBetween(tt.a, tt.b))
		})
	}
}

func TestSameDay(t *testing.T) {
	morning := time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)
	night := time.Date(2024, 3, 15, 23, 59, 59, 0, time.UTC)
	nextDay := time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC)

	assert.True(t, SameDay(morning, night))
	assert.False(t, SameDay(night, nextDay))
}
