package stats

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/lumen/internal/model"
	"github.com/verte-zerg/lumen/internal/schedule"
)

// today is Monday 2026-10-19, 18:00 UTC.
var today = time.Date(2026, 10, 19, 18, 0, 0, 0, time.UTC)

func clockAt(t time.Time) schedule.Clock {
	return schedule.FixedClock(t)
}

func sessionsOn(daysAgo ...int) []model.PrayerSessionRecord {
	out := make([]model.PrayerSessionRecord, 0, len(daysAgo))
	for i, d := range daysAgo {
		out = append(out, model.PrayerSessionRecord{
			ID:          int64(i + 1),
			Category:    schedule.CategoryForDate(today.AddDate(0, 0, -d)),
			CompletedAt: time.Date(2026, 10, 19-d, 7, 30, 0, 0, time.UTC),
		})
	}
	return out
}

func TestEmptyLog(t *testing.T) {
	agg := NewAggregator(nil, clockAt(today))
	assert.Equal(t, 0, agg.TotalCount())
	assert.Equal(t, 0, agg.CurrentStreak())
	assert.Equal(t, 0, agg.LongestStreak())
	assert.Empty(t, agg.SessionsOnDay(today))
	assert.Equal(t, time.Duration(0), agg.TotalDuration())

	counts := agg.CountByCategory()
	require.Len(t, counts, 5)
	for _, c := range model.AllCategories() {
		v, ok := counts[c]
		assert.True(t, ok, "missing category %s", c)
		assert.Equal(t, 0, v)
	}
	for _, day := range agg.WeeklyPrayerStatus(today) {
		assert.False(t, day.Prayed)
	}
}

func TestCountByCategoryIncludesZeroes(t *testing.T) {
	records := []model.PrayerSessionRecord{
		{Category: model.Joyful, CompletedAt: today},
		{Category: model.Joyful, CompletedAt: today},
		{Category: model.Luminous, CompletedAt: today},
	}
	counts := NewAggregator(records, clockAt(today)).CountByCategory()
	want := map[model.MysteryCategory]int{
		model.Joyful:       2,
		model.Sorrowful:    0,
		model.Glorious:     0,
		model.Luminous:     1,
		model.SevenSorrows: 0,
	}
	if diff := cmp.Diff(want, counts); diff != "" {
		t.Fatalf("unexpected counts (-want +got):\n%s", diff)
	}
}

func TestCurrentStreakScenarios(t *testing.T) {
	tests := []struct {
		name    string
		daysAgo []int
		want    int
	}{
		{"today and two before", []int{0, 1, 2}, 3},
		{"not yet today", []int{1, 2}, 2},
		{"nothing in last two days", []int{2, 3, 4}, 0},
		{"multiple sessions per day", []int{0, 0, 1, 1}, 2},
		{"gap breaks streak", []int{0, 1, 3, 4, 5}, 2},
		{"only today", []int{0}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg := NewAggregator(sessionsOn(tt.daysAgo...), clockAt(today))
			assert.Equal(t, tt.want, agg.CurrentStreak())
		})
	}
}

func TestLongestStreak(t *testing.T) {
	tests := []struct {
		name    string
		daysAgo []int
		want    int
	}{
		{"single session", []int{10}, 1},
		{"single day many sessions", []int{4, 4, 4}, 1},
		{"older run wins", []int{0, 1, 5, 6, 7, 8}, 4},
		{"unsorted input", []int{7, 0, 8, 1, 2}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg := NewAggregator(sessionsOn(tt.daysAgo...), clockAt(today))
			assert.Equal(t, tt.want, agg.LongestStreak())
		})
	}
}

func TestLongestNeverBelowCurrent(t *testing.T) {
	logs := [][]int{
		{},
		{0},
		{1, 2, 3},
		{0, 1, 2, 10, 11},
		{0, 2, 4, 6},
		{5, 4, 3, 2, 1, 0},
	}
	for _, days := range logs {
		s := NewAggregator(sessionsOn(days...), clockAt(today)).Streaks()
		assert.GreaterOrEqual(t, s.LongestStreak, s.CurrentStreak, "log %v", days)
	}
}

func TestStreakUsesLocalCalendarDay(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, loc)
	records := []model.PrayerSessionRecord{
		// 02:00 UTC on the 19th is still the 18th at UTC-5.
		{Category: model.Glorious, CompletedAt: time.Date(2026, 10, 19, 2, 0, 0, 0, time.UTC)},
		{Category: model.Sorrowful, CompletedAt: time.Date(2026, 10, 17, 20, 0, 0, 0, loc)},
	}
	agg := NewAggregator(records, clockAt(now))
	assert.Equal(t, 2, agg.CurrentStreak())
	assert.Len(t, agg.SessionsOnDay(time.Date(2026, 10, 18, 12, 0, 0, 0, loc)), 1)
	assert.Empty(t, agg.SessionsOnDay(now))
}

func TestSnapshotIsIsolated(t *testing.T) {
	records := sessionsOn(0, 1)
	agg := NewAggregator(records, clockAt(today))
	records[0].CompletedAt = today.AddDate(-1, 0, 0)
	assert.Equal(t, 2, agg.CurrentStreak())
	assert.Len(t, agg.Records(), 2)
}

func TestWeeklyPrayerStatus(t *testing.T) {
	agg := NewAggregator(sessionsOn(0, 1, 3), clockAt(today))
	week := agg.WeeklyPrayerStatus(today)
	require.Len(t, week, 7)
	assert.Equal(t, time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC), week[0].Date)
	got := make([]bool, 7)
	for i, d := range week {
		got[i] = d.Prayed
	}
	// Sunday 18th and Monday 19th prayed; Friday 16th belongs to the prior week.
	assert.Equal(t, []bool{true, true, false, false, false, false, false}, got)
}

func TestMonthGrid(t *testing.T) {
	agg := NewAggregator(sessionsOn(0, 0, 18), clockAt(today))
	grid := agg.MonthGrid(2026, time.October)
	assert.Equal(t, time.October, grid.Month)
	// October 2026 starts on a Thursday and spans five calendar weeks.
	require.Len(t, grid.Weeks, 5)
	assert.Equal(t, 0, grid.Weeks[0][3].Day)
	assert.Equal(t, 1, grid.Weeks[0][4].Day)
	assert.Equal(t, 1, grid.Weeks[0][4].Count)
	assert.Equal(t, 19, grid.Weeks[3][1].Day)
	assert.Equal(t, 2, grid.Weeks[3][1].Count)
	assert.Equal(t, 31, grid.Weeks[4][6].Day)
}

func TestRecentActivity(t *testing.T) {
	agg := NewAggregator(sessionsOn(0, 0, 2), clockAt(today))
	assert.Equal(t, []int{1, 0, 2}, agg.RecentActivity(3))
	assert.Nil(t, agg.RecentActivity(0))
}

func TestTotalDuration(t *testing.T) {
	d1, d2, neg := 600, 900, -5
	records := []model.PrayerSessionRecord{
		{Category: model.Joyful, CompletedAt: today, DurationSeconds: &d1},
		{Category: model.Joyful, CompletedAt: today, DurationSeconds: &d2},
		{Category: model.Joyful, CompletedAt: today, DurationSeconds: &neg},
		{Category: model.Joyful, CompletedAt: today},
	}
	assert.Equal(t, 25*time.Minute, NewAggregator(records, clockAt(today)).TotalDuration())
}

func TestSparkline(t *testing.T) {
	assert.Equal(t, "", Sparkline(nil))
	assert.Equal(t, "   ", Sparkline([]int{0, 0, 0}))
	assert.Equal(t, "+++", Sparkline([]int{2, 2, 2}))
	assert.Equal(t, " @", Sparkline([]int{0, 4}))
}
