package main

import (
	"fmt"
	"io"
	"os"

	"github.com/emersion/go-ical"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/verte-zerg/lumen/internal/export"
)

var (
	exportOut   string
	exportWeeks int
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the schedule or history as iCalendar",
	}
	cmd.PersistentFlags().StringVarP(&exportOut, "out", "o", "", "output file (default: stdout)")

	schedule := &cobra.Command{
		Use:   "schedule",
		Short: "Export upcoming mysteries as all-day events",
		Args:  cobra.NoArgs,
		RunE:  runExportScheduleCmd,
	}
	schedule.Flags().IntVar(&exportWeeks, "weeks", defaultExportWeeks, "number of weeks to export")
	cmd.AddCommand(schedule)
	cmd.AddCommand(&cobra.Command{
		Use:   "history",
		Short: "Export recorded sessions as events",
		Args:  cobra.NoArgs,
		RunE:  runExportHistoryCmd,
	})
	return cmd
}

func runExportScheduleCmd(cmd *cobra.Command, _ []string) error {
	if exportWeeks <= 0 {
		return fmt.Errorf("--weeks must be > 0")
	}
	fileCfg, err := loadFileConfig()
	if err != nil {
		return err
	}
	lib, err := loadLibrary(fileCfg)
	if err != nil {
		return err
	}
	cal := export.ScheduleCalendar(clock.Now(), exportWeeks, lib, clock)
	return writeCalendar(cmd, cal)
}

func runExportHistoryCmd(cmd *cobra.Command, _ []string) error {
	st, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()
	sessions, err := st.AllSessions(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load sessions: %w", err)
	}
	if len(sessions) == 0 {
		return fmt.Errorf("no sessions to export")
	}
	return writeCalendar(cmd, export.HistoryCalendar(sessions, clock))
}

func writeCalendar(cmd *cobra.Command, cal *ical.Calendar) error {
	if exportOut == "" || exportOut == "-" {
		return export.Encode(cmd.OutOrStdout(), cal)
	}
	f, err := os.Create(exportOut)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", exportOut, err)
	}
	if err := encodeAndClose(f, cal); err != nil {
		return err
	}
	log().Info("calendar exported", zap.String("path", exportOut), zap.Int("events", len(cal.Children)))
	_, err = fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", exportOut)
	return err
}

func encodeAndClose(w io.WriteCloser, cal *ical.Calendar) error {
	if err := export.Encode(w, cal); err != nil {
		if cerr := w.Close(); cerr != nil {
			// Best-effort close on encode failure.
			_ = cerr
		}
		return err
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close calendar file: %w", err)
	}
	return nil
}
