// Package stats contains statistics calculations and reporting.
package stats

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/verte-zerg/lumen/internal/model"
	"github.com/verte-zerg/lumen/internal/schedule"
)

const sparkChars = " .:-=+*#%@"

// Aggregator computes statistics over a snapshot of the session log. Every
// method recomputes from the snapshot; nothing is cached between calls.
type Aggregator struct {
	records []model.PrayerSessionRecord
	clock   schedule.Clock
}

// DayStatus reports whether any session was completed on a date.
type DayStatus struct {
	Date   time.Time
	Prayed bool
}

// GridCell is one day slot in a month grid. Day is 0 for padding cells.
type GridCell struct {
	Day   int
	Date  time.Time
	Count int
}

// MonthGrid is a Sunday-anchored calendar of session counts for one month.
type MonthGrid struct {
	Year  int
	Month time.Month
	Weeks [][7]GridCell
}

type dayKey struct {
	year  int
	month time.Month
	day   int
}

// NewAggregator copies records so later changes to the caller's slice do not
// leak into computed statistics.
func NewAggregator(records []model.PrayerSessionRecord, clock schedule.Clock) *Aggregator {
	if clock == nil {
		clock = schedule.RealClock{}
	}
	snapshot := make([]model.PrayerSessionRecord, len(records))
	copy(snapshot, records)
	return &Aggregator{records: snapshot, clock: clock}
}

// Records returns a copy of the snapshot.
func (a *Aggregator) Records() []model.PrayerSessionRecord {
	out := make([]model.PrayerSessionRecord, len(a.records))
	copy(out, a.records)
	return out
}

// TotalCount returns the number of sessions.
func (a *Aggregator) TotalCount() int {
	return len(a.records)
}

// CountByCategory counts sessions per category. Every category is present in
// the result, including those with no sessions.
func (a *Aggregator) CountByCategory() map[model.MysteryCategory]int {
	counts := make(map[model.MysteryCategory]int, len(model.AllCategories()))
	for _, c := range model.AllCategories() {
		counts[c] = 0
	}
	for _, r := range a.records {
		if _, ok := counts[r.Category]; ok {
			counts[r.Category]++
		}
	}
	return counts
}

// TotalDuration sums the durations that were recorded.
func (a *Aggregator) TotalDuration() time.Duration {
	var total time.Duration
	for _, r := range a.records {
		if r.DurationSeconds != nil && *r.DurationSeconds > 0 {
			total += time.Duration(*r.DurationSeconds) * time.Second
		}
	}
	return total
}

// SessionsOnDay returns the sessions completed on date's calendar day.
func (a *Aggregator) SessionsOnDay(date time.Time) []model.PrayerSessionRecord {
	target := a.keyOf(date)
	var out []model.PrayerSessionRecord
	for _, r := range a.records {
		if a.keyOf(r.CompletedAt) == target {
			out = append(out, r)
		}
	}
	return out
}

// CurrentStreak counts consecutive prayed days ending today. When nothing was
// prayed today the count starts from yesterday, so an unfinished day does not
// break the streak.
func (a *Aggregator) CurrentStreak() int {
	days := a.daySet()
	if len(days) == 0 {
		return 0
	}
	day := schedule.StartOfDay(a.now())
	if !days[keyFor(day)] {
		day = day.AddDate(0, 0, -1)
	}
	streak := 0
	for days[keyFor(day)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// LongestStreak returns the longest run of consecutive prayed days. An empty
// log yields 0 and a single prayed day yields 1.
func (a *Aggregator) LongestStreak() int {
	days := a.daySet()
	if len(days) == 0 {
		return 0
	}
	ordinals := make([]int64, 0, len(days))
	for k := range days {
		ordinals = append(ordinals, k.ordinal())
	}
	sort.Slice(ordinals, func(i, j int) bool { return ordinals[i] < ordinals[j] })

	longest, running := 1, 1
	for i := 1; i < len(ordinals); i++ {
		if ordinals[i]-ordinals[i-1] == 1 {
			running++
		} else {
			running = 1
		}
		if running > longest {
			longest = running
		}
	}
	return longest
}

// Streaks returns both streak figures.
func (a *Aggregator) Streaks() model.StreakState {
	return model.StreakState{
		CurrentStreak: a.CurrentStreak(),
		LongestStreak: a.LongestStreak(),
	}
}

// WeeklyPrayerStatus reports the seven days of the Sunday-anchored week that
// contains weekStart.
func (a *Aggregator) WeeklyPrayerStatus(weekStart time.Time) []DayStatus {
	days := a.daySet()
	first := schedule.StartOfWeek(weekStart.In(a.location()))
	out := make([]DayStatus, 0, 7)
	for i := 0; i < 7; i++ {
		date := first.AddDate(0, 0, i)
		out = append(out, DayStatus{Date: date, Prayed: days[keyFor(date)]})
	}
	return out
}

// MonthGrid lays out the session counts of a month as calendar weeks.
func (a *Aggregator) MonthGrid(year int, month time.Month) MonthGrid {
	counts := a.dayCounts()
	loc := a.location()
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	grid := MonthGrid{Year: first.Year(), Month: first.Month()}

	var week [7]GridCell
	col := int(first.Weekday())
	for date := first; date.Month() == first.Month(); date = date.AddDate(0, 0, 1) {
		week[col] = GridCell{Day: date.Day(), Date: date, Count: counts[keyFor(date)]}
		col++
		if col == 7 {
			grid.Weeks = append(grid.Weeks, week)
			week = [7]GridCell{}
			col = 0
		}
	}
	if col > 0 {
		grid.Weeks = append(grid.Weeks, week)
	}
	return grid
}

// RecentActivity returns per-day session counts for the last n days, oldest
// first and ending today.
func (a *Aggregator) RecentActivity(n int) []int {
	if n <= 0 {
		return nil
	}
	counts := a.dayCounts()
	today := schedule.StartOfDay(a.now())
	out := make([]int, n)
	for i := 0; i < n; i++ {
		date := today.AddDate(0, 0, i-(n-1))
		out[i] = counts[keyFor(date)]
	}
	return out
}

func (a *Aggregator) now() time.Time {
	return a.clock.Now()
}

func (a *Aggregator) location() *time.Location {
	return a.now().Location()
}

func (a *Aggregator) keyOf(t time.Time) dayKey {
	return keyFor(t.In(a.location()))
}

func (a *Aggregator) daySet() map[dayKey]bool {
	set := make(map[dayKey]bool, len(a.records))
	for _, r := range a.records {
		set[a.keyOf(r.CompletedAt)] = true
	}
	return set
}

func (a *Aggregator) dayCounts() map[dayKey]int {
	counts := make(map[dayKey]int, len(a.records))
	for _, r := range a.records {
		counts[a.keyOf(r.CompletedAt)]++
	}
	return counts
}

func keyFor(t time.Time) dayKey {
	y, m, d := t.Date()
	return dayKey{year: y, month: m, day: d}
}

// ordinal numbers calendar days so adjacent days differ by exactly one,
// independent of daylight saving transitions.
func (k dayKey) ordinal() int64 {
	return time.Date(k.year, k.month, k.day, 0, 0, 0, 0, time.UTC).Unix() / 86400
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []int) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == 0 {
		return strings.Repeat(string(sparkChars[0]), len(values))
	}
	if maxVal == minVal {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := float64(v-minVal) / float64(maxVal-minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}
