package stats

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderSummaryEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderSummary(&buf, NewAggregator(nil, clockAt(today)), 7))
	assert.Equal(t, "No sessions found.\n", buf.String())
}

func TestRenderSummary(t *testing.T) {
	var buf bytes.Buffer
	agg := NewAggregator(sessionsOn(0, 1, 5), clockAt(today))
	require.NoError(t, RenderSummary(&buf, agg, 7))
	out := buf.String()
	assert.Contains(t, out, "Sessions: 3")
	assert.Contains(t, out, "Current streak: 2 days")
	assert.Contains(t, out, "Longest streak: 2 days")
	assert.Contains(t, out, "Last 7 days: [")
	assert.NotContains(t, out, "Time in prayer")
}

func TestRenderCategoryTableListsAllCategories(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderCategoryTable(&buf, NewAggregator(nil, clockAt(today))))
	out := buf.String()
	for _, title := range []string{"Joyful Mysteries", "Sorrowful Mysteries", "Glorious Mysteries", "Luminous Mysteries", "Seven Sorrows of Mary"} {
		assert.Contains(t, out, title)
	}
	assert.Contains(t, out, "0.0%")
}

func TestMonthLines(t *testing.T) {
	agg := NewAggregator(sessionsOn(0, 18), clockAt(today))
	lines := MonthLines(agg.MonthGrid(2026, time.October))
	require.Len(t, lines, 7)
	assert.Equal(t, "October 2026", lines[0])
	assert.Equal(t, "                  1*  2   3", lines[2])
	assert.True(t, strings.Contains(lines[5], " 19*"))
}

func TestRenderWeek(t *testing.T) {
	var buf bytes.Buffer
	agg := NewAggregator(sessionsOn(0), clockAt(today))
	require.NoError(t, RenderWeek(&buf, agg.WeeklyPrayerStatus(today)))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "Sun 2026-10-18  [-]", lines[0])
	assert.Equal(t, "Mon 2026-10-19  [x]", lines[1])
}

func TestRenderHistoryNewestFirstWithLimit(t *testing.T) {
	sessions := sessionsOn(5, 1, 0)
	minutes := 1230
	sessions[2].DurationSeconds = &minutes

	var buf bytes.Buffer
	require.NoError(t, RenderHistory(&buf, sessions, 2))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "ID Completed"))
	assert.True(t, strings.HasPrefix(lines[1], " 3 2026-10-19 07:30 Joyful Mysteries"))
	assert.Contains(t, lines[1], "21")
	assert.True(t, strings.HasPrefix(lines[2], " 2 2026-10-18 07:30 Glorious Mysteries"))
}

func TestRenderHistoryEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderHistory(&buf, nil, 0))
	assert.Equal(t, "No sessions found.\n", buf.String())
}
