package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/lumen/internal/model"
)

func TestCategoryForWeekdayTable(t *testing.T) {
	tests := []struct {
		weekday int
		want    model.MysteryCategory
	}{
		{1, model.Glorious},
		{2, model.Joyful},
		{3, model.Sorrowful},
		{4, model.Glorious},
		{5, model.Joyful},
		{6, model.Sorrowful},
		{7, model.Joyful},
		{0, model.Joyful},
		{8, model.Joyful},
		{-3, model.Joyful},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CategoryForWeekday(tt.weekday), "weekday %d", tt.weekday)
	}
}

func TestCategoryForWeekdayNeverScheduled(t *testing.T) {
	allowed := map[model.MysteryCategory]bool{
		model.Glorious:  true,
		model.Joyful:    true,
		model.Sorrowful: true,
	}
	for wd := 1; wd <= 7; wd++ {
		got := CategoryForWeekday(wd)
		assert.True(t, allowed[got], "weekday %d resolved to %s", wd, got)
	}
}

func TestCategoryForToday(t *testing.T) {
	// 2026-10-16 is a Friday.
	clock := FixedClock(time.Date(2026, 10, 16, 23, 59, 0, 0, time.Local))
	assert.Equal(t, model.Sorrowful, CategoryForToday(clock))
}

func TestWeekIsSundayAnchored(t *testing.T) {
	wed := time.Date(2026, 10, 14, 15, 0, 0, 0, time.UTC)
	days := Week(wed)
	require.Len(t, days, 7)
	assert.Equal(t, time.Sunday, days[0].Date.Weekday())
	assert.Equal(t, time.Date(2026, 10, 11, 0, 0, 0, 0, time.UTC), days[0].Date)
	assert.Equal(t, model.Glorious, days[0].Category)
	assert.Equal(t, model.Joyful, days[6].Category)
}

func TestRange(t *testing.T) {
	days := Range(time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC), 3)
	require.Len(t, days, 3)
	assert.Equal(t, []model.MysteryCategory{model.Glorious, model.Joyful, model.Sorrowful},
		[]model.MysteryCategory{days[0].Category, days[1].Category, days[2].Category})
	assert.Nil(t, Range(time.Now(), 0))
}
