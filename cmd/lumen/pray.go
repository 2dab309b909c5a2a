package main

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/verte-zerg/lumen/internal/bilingual"
	"github.com/verte-zerg/lumen/internal/consecration"
	"github.com/verte-zerg/lumen/internal/model"
	"github.com/verte-zerg/lumen/internal/schedule"
	"github.com/verte-zerg/lumen/internal/stats"
	"github.com/verte-zerg/lumen/internal/store"
	"github.com/verte-zerg/lumen/internal/tui"
)

var (
	prayMystery string
	prayMode    string
	prayType    string

	prayerMode string
)

func addPrayFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&prayMystery, "mystery", "", "mysteries to pray (default: today's)")
	cmd.Flags().StringVar(&prayMode, "mode", defaultMode, "display mode for this run")
	cmd.Flags().StringVar(&prayType, "type", "", "meditation type to record with the session")
}

func runPrayCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadFileConfig()
	if err != nil {
		return err
	}
	applyStringConfig(cmd, "mode", &prayMode, fileCfg.Prayer.Mode)

	category := schedule.CategoryForToday(clock)
	if prayMystery != "" {
		if category, err = model.ParseCategory(prayMystery); err != nil {
			return fmt.Errorf("invalid --mystery: %w", err)
		}
	}
	primary, secondary, err := languageTags(fileCfg)
	if err != nil {
		return err
	}
	lib, err := loadLibrary(fileCfg)
	if err != nil {
		return err
	}

	st, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	mode, err := resolveMode(cmd.Context(), cmd, prayMode, st)
	if err != nil {
		return err
	}
	var medType *string
	if prayType != "" {
		medType = &prayType
	}

	cfg := model.Config{
		Category:      category,
		Mode:          mode,
		PrimaryLang:   primary,
		SecondaryLang: secondary,
	}
	log().Info("starting prayer",
		zap.String("category", category.String()),
		zap.String("mode", mode.String()))

	m, err := tui.NewModel(tui.Options{
		Config:         cfg,
		Store:          st,
		Library:        lib,
		Clock:          clock,
		Logger:         log(),
		MeditationType: medType,
	})
	if err != nil {
		return err
	}
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newTodayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show today's mysteries",
		Args:  cobra.NoArgs,
		RunE:  runTodayCmd,
	}
}

func runTodayCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadFileConfig()
	if err != nil {
		return err
	}
	lib, err := loadLibrary(fileCfg)
	if err != nil {
		return err
	}
	now := clock.Now()
	category := schedule.CategoryForDate(now)
	info := lib.Category(category)

	w := cmd.OutOrStdout()
	lines := []string{
		now.Format("Monday, January 2, 2006"),
		fmt.Sprintf("%s (%s)", info.Name, info.Days),
	}
	for _, m := range info.Mysteries {
		line := fmt.Sprintf("  %d. %s", m.Number, m.Title)
		if m.Reference != "" {
			line += fmt.Sprintf(" (%s)", m.Reference)
		}
		if m.Fruit != "" {
			line += " - Fruit: " + m.Fruit
		}
		lines = append(lines, line)
	}
	if err := writeLines(w, lines); err != nil {
		return err
	}

	st, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()
	plan, ok, err := loadPlan(cmd, st)
	if err != nil {
		return err
	}
	if ok {
		day := plan.DayNumber(now)
		if day >= 1 && day <= consecration.PreparationDays+1 {
			return writeLines(w, []string{"", consecrationLine(plan, now)})
		}
	}
	return nil
}

func newWeekCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "week",
		Short: "Show this week's schedule",
		Args:  cobra.NoArgs,
		RunE:  runWeekCmd,
	}
}

func runWeekCmd(cmd *cobra.Command, _ []string) error {
	st, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()
	sessions, err := st.AllSessions(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load sessions: %w", err)
	}

	now := clock.Now()
	status := stats.NewAggregator(sessions, clock).WeeklyPrayerStatus(now)
	week := schedule.Week(now)
	lines := make([]string, 0, len(week))
	for i, day := range week {
		mark := "[ ]"
		if status[i].Prayed {
			mark = "[x]"
		}
		line := fmt.Sprintf("%s %s  %-22s %s", day.Date.Format("Mon"), day.Date.Format("2006-01-02"), day.Category.Title(), mark)
		if schedule.StartOfDay(now).Equal(day.Date) {
			line += "  <- today"
		}
		lines = append(lines, line)
	}
	return writeLines(cmd.OutOrStdout(), lines)
}

func newPrayerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prayer [id]",
		Short: "Print a prayer, or list prayer ids",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPrayerCmd,
	}
	cmd.Flags().StringVar(&prayerMode, "mode", defaultMode, "display mode")
	return cmd
}

func runPrayerCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := loadFileConfig()
	if err != nil {
		return err
	}
	applyStringConfig(cmd, "mode", &prayerMode, fileCfg.Prayer.Mode)
	lib, err := loadLibrary(fileCfg)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	if len(args) == 0 {
		ids := lib.PrayerIDs()
		lines := make([]string, 0, len(ids))
		for _, id := range ids {
			p, _ := lib.Prayer(id)
			lines = append(lines, fmt.Sprintf("%-24s %s", id, p.Title))
		}
		return writeLines(w, lines)
	}

	prayer, ok := lib.Prayer(args[0])
	if !ok {
		return fmt.Errorf("unknown prayer %q (run: lumen prayer)", args[0])
	}
	mode, err := model.ParseDisplayMode(prayerMode)
	if err != nil {
		return fmt.Errorf("invalid --mode: %w", err)
	}
	lines := []string{prayer.Title, ""}
	lines = append(lines, plainPrayerLines(bilingual.Format(prayer.Text, mode))...)
	return writeLines(w, lines)
}

// plainPrayerLines renders paired lines as the first language followed by
// the second, indented.
func plainPrayerLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		first, second, paired := bilingual.SplitPair(line)
		if paired {
			out = append(out, first, "  "+second)
			continue
		}
		out = append(out, line)
	}
	return out
}

func newModeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mode [mode]",
		Short: "Show or set the display mode",
		Long: `Show or set the bilingual display mode.

Modes:
  primary             primary language only
  secondary           secondary language only
  primary-secondary   each line in the primary language, then the secondary
  secondary-primary   each line in the secondary language, then the primary`,
		Args: cobra.MaximumNArgs(1),
		RunE: runModeCmd,
	}
}

func runModeCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := loadFileConfig()
	if err != nil {
		return err
	}
	st, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	w := cmd.OutOrStdout()
	if len(args) == 1 {
		mode, err := model.ParseDisplayMode(args[0])
		if err != nil {
			return err
		}
		if err := st.SetDisplayMode(cmd.Context(), mode); err != nil {
			return fmt.Errorf("failed to save display mode: %w", err)
		}
		log().Info("display mode saved", zap.String("mode", mode.String()))
		_, err = fmt.Fprintf(w, "Display mode set to %s\n", mode)
		return err
	}

	fallbackRaw := defaultMode
	if fileCfg.Prayer.Mode != nil {
		fallbackRaw = *fileCfg.Prayer.Mode
	}
	fallback, err := model.ParseDisplayMode(fallbackRaw)
	if err != nil {
		return fmt.Errorf("prayer.mode: %w", err)
	}
	mode, err := st.DisplayMode(cmd.Context(), fallback)
	if err != nil {
		return err
	}
	lines := make([]string, 0, len(model.AllDisplayModes()))
	for _, m := range model.AllDisplayModes() {
		marker := "  "
		if m == mode {
			marker = "* "
		}
		lines = append(lines, marker+m.String())
	}
	return writeLines(w, lines)
}

func loadPlan(cmd *cobra.Command, st *store.Store) (consecration.Plan, bool, error) {
	raw, ok, err := st.Setting(cmd.Context(), store.KeyConsecrationStart)
	if err != nil {
		return consecration.Plan{}, false, fmt.Errorf("failed to load consecration: %w", err)
	}
	if !ok {
		return consecration.Plan{}, false, nil
	}
	plan, err := consecration.ParsePlan(raw, clock.Now().Location())
	if err != nil {
		return consecration.Plan{}, false, err
	}
	return plan, true, nil
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}
