package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/verte-zerg/lumen/internal/consecration"
	"github.com/verte-zerg/lumen/internal/store"
)

var (
	consecrationDate string
	consecrationNext bool
)

func newConsecrationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "consecration",
		Short: "Track the 33-day preparation for Marian consecration",
	}
	start := &cobra.Command{
		Use:   "start",
		Short: "Begin a preparation",
		Args:  cobra.NoArgs,
		RunE:  runConsecrationStartCmd,
	}
	start.Flags().StringVar(&consecrationDate, "date", "", "start date (YYYY-MM-DD, default: today)")
	start.Flags().BoolVar(&consecrationNext, "next-feast", false, "start so the consecration falls on the next Marian feast")
	cmd.AddCommand(start)
	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the current day of the preparation",
		Args:  cobra.NoArgs,
		RunE:  runConsecrationStatusCmd,
	})
	return cmd
}

func runConsecrationStartCmd(cmd *cobra.Command, _ []string) error {
	if consecrationDate != "" && consecrationNext {
		return fmt.Errorf("--date and --next-feast cannot be combined")
	}
	now := clock.Now()
	plan := consecration.NewPlan(now)
	var feastName string
	switch {
	case consecrationDate != "":
		start, err := time.ParseInLocation(consecration.DateLayout, consecrationDate, now.Location())
		if err != nil {
			return fmt.Errorf("invalid --date value: %w", err)
		}
		plan = consecration.NewPlan(start)
	case consecrationNext:
		feast, date := consecration.NextFeast(now)
		plan = consecration.NewPlan(consecration.StartForFeast(date))
		feastName = feast.Name
	}

	st, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()
	if err := st.SetSetting(cmd.Context(), store.KeyConsecrationStart, plan.Format()); err != nil {
		return fmt.Errorf("failed to save consecration: %w", err)
	}
	log().Info("consecration started", zap.String("start", plan.Format()))

	lines := []string{
		fmt.Sprintf("Preparation starts %s", plan.Start.Format("Monday, January 2, 2006")),
		fmt.Sprintf("Consecration on %s", plan.ConsecrationDate().Format("Monday, January 2, 2006")),
	}
	if feastName != "" {
		lines[1] += " (" + feastName + ")"
	}
	return writeLines(cmd.OutOrStdout(), lines)
}

func runConsecrationStatusCmd(cmd *cobra.Command, _ []string) error {
	st, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()
	plan, ok, err := loadPlan(cmd, st)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	if !ok {
		return writeLines(w, []string{"No consecration in progress. Start one with: lumen consecration start"})
	}
	now := clock.Now()
	return writeLines(w, []string{
		consecrationLine(plan, now),
		fmt.Sprintf("Consecration on %s", plan.ConsecrationDate().Format("Monday, January 2, 2006")),
	})
}

func consecrationLine(plan consecration.Plan, now time.Time) string {
	day := plan.DayNumber(now)
	phase := plan.Phase(now)
	switch phase {
	case consecration.NotStarted:
		return fmt.Sprintf("Consecration preparation begins %s", plan.Start.Format("2006-01-02"))
	case consecration.ConsecrationDay:
		return "Consecration day"
	case consecration.Completed:
		return fmt.Sprintf("Consecration completed on %s", plan.ConsecrationDate().Format("2006-01-02"))
	default:
		return fmt.Sprintf("Consecration preparation: day %d of %d, %s", day, consecration.PreparationDays, phase)
	}
}
