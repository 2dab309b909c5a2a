// Package main provides the CLI entrypoint for lumen.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/verte-zerg/lumen/internal/config"
	"github.com/verte-zerg/lumen/internal/content"
	"github.com/verte-zerg/lumen/internal/logging"
	"github.com/verte-zerg/lumen/internal/model"
	"github.com/verte-zerg/lumen/internal/schedule"
	"github.com/verte-zerg/lumen/internal/store"
)

const (
	defaultMode          = "primary"
	defaultPrimaryLang   = "en"
	defaultSecondaryLang = "la"
	defaultRecentDays    = 30
	defaultHistoryLimit  = 20
	defaultExportWeeks   = 4
)

var (
	verbose bool
	logger  *zap.Logger

	// clock is replaced in tests.
	clock schedule.Clock = schedule.RealClock{}
)

// interactiveCommands log to a file so output does not corrupt the screen.
var interactiveCommands = map[string]bool{
	"lumen": true,
	"stats": true,
}

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "lumen",
		Short:         "Bilingual Rosary companion",
		Long:          "lumen walks through the Rosary in two languages, keeps a prayer log and\nshows streaks and history.\n\nRun without arguments to pray today's mysteries.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			opts := logging.Options{Verbose: verbose}
			if interactiveCommands[cmd.Name()] {
				opts.Path = config.DefaultLogPath()
			}
			var err error
			logger, err = logging.New(opts)
			return err
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
		RunE: runPrayCmd,
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	addPrayFlags(rootCmd)

	rootCmd.AddCommand(newTodayCmd())
	rootCmd.AddCommand(newWeekCmd())
	rootCmd.AddCommand(newPrayerCmd())
	rootCmd.AddCommand(newModeCmd())
	rootCmd.AddCommand(newRecordCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newConsecrationCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newMeditationsCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func log() *zap.Logger {
	return logging.OrNop(logger)
}

func loadFileConfig() (config.FileConfig, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return config.FileConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	return fileCfg, nil
}

func openStore() (*store.Store, func(), error) {
	path := config.DefaultDBPath()
	st, err := store.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open db: %w", err)
	}
	log().Debug("opened store", zap.String("path", path))
	closeFn := func() {
		if cerr := st.Close(); cerr != nil {
			log().Warn("failed to close db", zap.Error(cerr))
		}
	}
	return st, closeFn, nil
}

func loadLibrary(fileCfg config.FileConfig) (*content.Library, error) {
	lib, err := content.Default()
	if err != nil {
		return nil, fmt.Errorf("failed to load prayers: %w", err)
	}
	if fileCfg.Prayer.Content != nil && *fileCfg.Prayer.Content != "" {
		path := expandHome(*fileCfg.Prayer.Content)
		if err := lib.LoadOverrides(path); err != nil {
			return nil, err
		}
		log().Debug("loaded content overrides", zap.String("path", path))
	}
	return lib, nil
}

// resolveMode picks the display mode: an explicit flag wins, then the stored
// preference, then the config file value already applied to flagValue.
func resolveMode(ctx context.Context, cmd *cobra.Command, flagValue string, st *store.Store) (model.DisplayMode, error) {
	fallback, err := model.ParseDisplayMode(flagValue)
	if err != nil {
		return model.PrimaryOnly, fmt.Errorf("invalid --mode: %w", err)
	}
	if cmd.Flags().Changed("mode") || st == nil {
		return fallback, nil
	}
	mode, err := st.DisplayMode(ctx, fallback)
	if err != nil {
		log().Warn("ignoring stored display mode", zap.Error(err))
		return fallback, nil
	}
	return mode, nil
}

func languageTags(fileCfg config.FileConfig) (primary, secondary string, err error) {
	primary, secondary = defaultPrimaryLang, defaultSecondaryLang
	if fileCfg.Prayer.PrimaryLang != nil {
		primary = *fileCfg.Prayer.PrimaryLang
	}
	if fileCfg.Prayer.SecondaryLang != nil {
		secondary = *fileCfg.Prayer.SecondaryLang
	}
	if primary, err = config.NormalizeLang(primary); err != nil {
		return "", "", fmt.Errorf("prayer.primary-lang: %w", err)
	}
	if secondary, err = config.NormalizeLang(secondary); err != nil {
		return "", "", fmt.Errorf("prayer.secondary-lang: %w", err)
	}
	return primary, secondary, nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return home + path[1:]
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}
