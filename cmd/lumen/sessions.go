package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/verte-zerg/lumen/internal/model"
	"github.com/verte-zerg/lumen/internal/stats"
	"github.com/verte-zerg/lumen/internal/statsui"
	"github.com/verte-zerg/lumen/internal/store"
)

var (
	recordDuration time.Duration
	recordType     string
	recordAt       string

	historyLimit    int
	historyCategory string

	statsPlain      bool
	statsSince      string
	statsCategory   string
	statsRecentDays int
)

func newRecordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record <category>",
		Short: "Record a completed Rosary",
		Long: `Record a Rosary prayed outside the walkthrough.

Categories: joyful, sorrowful, glorious, luminous, seven-sorrows.`,
		Args: cobra.ExactArgs(1),
		RunE: runRecordCmd,
	}
	cmd.Flags().DurationVar(&recordDuration, "duration", 0, "time spent praying (e.g. 20m)")
	cmd.Flags().StringVar(&recordType, "type", "", "meditation type")
	cmd.Flags().StringVar(&recordAt, "at", "", "completion time (YYYY-MM-DD or YYYY-MM-DD HH:MM, default: now)")
	return cmd
}

func runRecordCmd(cmd *cobra.Command, args []string) error {
	category, err := model.ParseCategory(args[0])
	if err != nil {
		return err
	}
	if recordDuration < 0 {
		return fmt.Errorf("--duration must be >= 0")
	}
	completedAt := clock.Now()
	if recordAt != "" {
		if completedAt, err = parseAt(recordAt, completedAt.Location()); err != nil {
			return err
		}
	}
	var duration *int
	if recordDuration > 0 {
		seconds := int(recordDuration.Seconds())
		duration = &seconds
	}
	var medType *string
	if recordType != "" {
		medType = &recordType
	}

	st, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	rec, err := st.RecordSession(cmd.Context(), category, completedAt, duration, medType)
	if err != nil {
		return fmt.Errorf("failed to record session: %w", err)
	}
	log().Info("session recorded",
		zap.Int64("id", rec.ID),
		zap.String("uid", rec.UID),
		zap.String("category", category.String()))
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Recorded session %d: %s on %s\n",
		rec.ID, category.Title(), completedAt.Format("2006-01-02 15:04"))
	return err
}

func parseAt(value string, loc *time.Location) (time.Time, error) {
	for _, layout := range []string{"2006-01-02 15:04", "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid --at value %q (expected YYYY-MM-DD or YYYY-MM-DD HH:MM)", value)
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded sessions",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().IntVar(&historyLimit, "limit", defaultHistoryLimit, "number of sessions to show (0 for all)")
	cmd.Flags().StringVar(&historyCategory, "category", "", "category filter")
	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a recorded session",
		Args:  cobra.ExactArgs(1),
		RunE:  runHistoryDeleteCmd,
	})
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	if historyLimit < 0 {
		return fmt.Errorf("--limit must be >= 0")
	}
	cfg := model.StatsConfig{}
	if historyCategory != "" {
		category, err := model.ParseCategory(historyCategory)
		if err != nil {
			return fmt.Errorf("invalid --category: %w", err)
		}
		cfg.Category = &category
	}
	st, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	sessions, err := st.ListSessions(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("failed to load sessions: %w", err)
	}
	return stats.RenderHistory(cmd.OutOrStdout(), sessions, historyLimit)
}

func runHistoryDeleteCmd(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid session id %q", args[0])
	}
	st, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	if err := st.DeleteSession(cmd.Context(), id); err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			return fmt.Errorf("no session with id %d", id)
		}
		return fmt.Errorf("failed to delete session: %w", err)
	}
	log().Info("session deleted", zap.Int64("id", id))
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Deleted session %d\n", id)
	return err
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show prayer statistics",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print plain text instead of the interactive view")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&statsCategory, "category", "", "category filter")
	cmd.Flags().IntVar(&statsRecentDays, "recent-days", defaultRecentDays, "days shown in the activity sparkline")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadFileConfig()
	if err != nil {
		return err
	}
	applyIntConfig(cmd, "recent-days", &statsRecentDays, fileCfg.Stats.RecentDays)
	if statsRecentDays <= 0 {
		return fmt.Errorf("--recent-days must be > 0")
	}

	cfg := model.StatsConfig{RecentDays: statsRecentDays}
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, clock.Now().Location())
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		cfg.Since = &parsed
	}
	if statsCategory != "" {
		category, err := model.ParseCategory(statsCategory)
		if err != nil {
			return fmt.Errorf("invalid --category: %w", err)
		}
		cfg.Category = &category
	}

	st, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	if statsPlain || !isTerminal(cmd) {
		return renderPlainStats(cmd, st, cfg)
	}
	m := statsui.NewModel(st, cfg, clock, log())
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func renderPlainStats(cmd *cobra.Command, src stats.SessionSource, cfg model.StatsConfig) error {
	report, err := stats.BuildReport(cmd.Context(), src, cfg, clock)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}
	w := cmd.OutOrStdout()
	if err := stats.RenderSummary(w, report.Aggregator, cfg.RecentDays); err != nil {
		return err
	}
	if report.Aggregator.TotalCount() == 0 {
		return nil
	}
	if err := stats.RenderCategoryTable(w, report.Aggregator); err != nil {
		return err
	}
	now := clock.Now()
	return stats.RenderMonth(w, report.Aggregator.MonthGrid(now.Year(), now.Month()))
}

// isTerminal reports whether the command writes to an interactive terminal.
func isTerminal(cmd *cobra.Command) bool {
	f, ok := cmd.OutOrStdout().(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
