package stats

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/verte-zerg/lumen/internal/model"
)

// RenderSummary prints the headline figures for the session log.
func RenderSummary(w io.Writer, agg *Aggregator, recentDays int) error {
	if agg.TotalCount() == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}
	streaks := agg.Streaks()
	lines := []string{
		"Summary",
		fmt.Sprintf("Sessions: %d", agg.TotalCount()),
		fmt.Sprintf("Current streak: %s", pluralDays(streaks.CurrentStreak)),
		fmt.Sprintf("Longest streak: %s", pluralDays(streaks.LongestStreak)),
	}
	if d := agg.TotalDuration(); d > 0 {
		lines = append(lines, fmt.Sprintf("Time in prayer: %.0f min", d.Minutes()))
	}
	if recentDays > 0 {
		lines = append(lines, fmt.Sprintf("Last %d days: [%s]", recentDays, Sparkline(agg.RecentActivity(recentDays))))
	}
	lines = append(lines, "")
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderCategoryTable prints the per-category counts, every category included.
func RenderCategoryTable(w io.Writer, agg *Aggregator) error {
	counts := agg.CountByCategory()
	total := agg.TotalCount()
	headers := []string{"Mysteries", "Sessions", "Share"}
	rows := make([][]string, 0, len(counts))
	for _, c := range model.AllCategories() {
		share := 0.0
		if total > 0 {
			share = float64(counts[c]) / float64(total) * 100
		}
		rows = append(rows, []string{
			c.Title(),
			strconv.Itoa(counts[c]),
			fmt.Sprintf("%.1f%%", share),
		})
	}
	for _, line := range formatTable(headers, rows, map[int]bool{1: true, 2: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderMonth prints a month grid. Prayed days are marked with '*'.
func RenderMonth(w io.Writer, grid MonthGrid) error {
	lines := MonthLines(grid)
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// MonthLines renders a month grid as plain text lines, one header line, one
// weekday line and one line per week.
func MonthLines(grid MonthGrid) []string {
	lines := make([]string, 0, len(grid.Weeks)+2)
	lines = append(lines, fmt.Sprintf("%s %d", grid.Month, grid.Year))
	lines = append(lines, " Su  Mo  Tu  We  Th  Fr  Sa")
	for _, week := range grid.Weeks {
		cells := make([]string, 0, 7)
		for _, cell := range week {
			cells = append(cells, formatCell(cell))
		}
		lines = append(lines, strings.TrimRight(strings.Join(cells, ""), " "))
	}
	return lines
}

func formatCell(cell GridCell) string {
	if cell.Day == 0 {
		return "    "
	}
	mark := " "
	if cell.Count > 0 {
		mark = "*"
	}
	return fmt.Sprintf("%3d%s", cell.Day, mark)
}

// RenderWeek prints one line per day of a weekly status.
func RenderWeek(w io.Writer, week []DayStatus) error {
	for _, day := range week {
		mark := "-"
		if day.Prayed {
			mark = "x"
		}
		if _, err := fmt.Fprintf(w, "%s %s  [%s]\n", day.Date.Format("Mon"), day.Date.Format("2006-01-02"), mark); err != nil {
			return err
		}
	}
	return nil
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

// RenderHistory prints sessions newest first, at most limit rows when limit
// is positive.
func RenderHistory(w io.Writer, sessions []model.PrayerSessionRecord, limit int) error {
	if len(sessions) == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}
	headers := []string{"ID", "Completed", "Mysteries", "Minutes", "Type"}
	rows := make([][]string, 0, len(sessions))
	for i := len(sessions) - 1; i >= 0; i-- {
		if limit > 0 && len(rows) == limit {
			break
		}
		rows = append(rows, HistoryRow(sessions[i]))
	}
	for _, line := range formatTable(headers, rows, map[int]bool{0: true, 3: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// HistoryRow formats one session as id, completion time, category, whole
// minutes rounded up and meditation type.
func HistoryRow(s model.PrayerSessionRecord) []string {
	minutes := "-"
	if s.DurationSeconds != nil && *s.DurationSeconds > 0 {
		minutes = strconv.Itoa((*s.DurationSeconds + 59) / 60)
	}
	medType := "-"
	if s.MeditationType != nil && *s.MeditationType != "" {
		medType = *s.MeditationType
	}
	return []string{
		strconv.FormatInt(s.ID, 10),
		s.CompletedAt.Format("2006-01-02 15:04"),
		s.Category.Title(),
		minutes,
		medType,
	}
}
