package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/verte-zerg/lumen/internal/config"
	"github.com/verte-zerg/lumen/internal/content"
	"github.com/verte-zerg/lumen/internal/model"
)

var (
	meditationsURL      string
	meditationsCategory string
)

func newMeditationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "meditations",
		Short: "Manage the recorded meditation catalog",
	}
	sync := &cobra.Command{
		Use:   "sync",
		Short: "Download the meditation catalog",
		Args:  cobra.NoArgs,
		RunE:  runMeditationsSyncCmd,
	}
	sync.Flags().StringVar(&meditationsURL, "url", "", "catalog url (default: meditations.catalog-url)")
	cmd.AddCommand(sync)

	list := &cobra.Command{
		Use:   "list",
		Short: "List cached meditations",
		Args:  cobra.NoArgs,
		RunE:  runMeditationsListCmd,
	}
	list.Flags().StringVar(&meditationsCategory, "category", "", "category filter")
	cmd.AddCommand(list)
	return cmd
}

func runMeditationsSyncCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadFileConfig()
	if err != nil {
		return err
	}
	applyStringConfig(cmd, "url", &meditationsURL, fileCfg.Meditations.CatalogURL)
	if meditationsURL == "" {
		return fmt.Errorf("no catalog url; pass --url or set meditations.catalog-url in %s", config.DefaultConfigPath())
	}

	log().Info("fetching meditation catalog", zap.String("url", meditationsURL))
	client := &http.Client{Timeout: 30 * time.Second}
	cat, err := content.FetchCatalog(cmd.Context(), client, meditationsURL, config.DefaultCatalogCacheDir())
	if err != nil {
		return err
	}
	state := "downloaded"
	if cat.Cached {
		state = "up to date"
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Catalog %s %s: %d meditations\n", cat.Version, state, len(cat.Meditations))
	return err
}

func runMeditationsListCmd(cmd *cobra.Command, _ []string) error {
	cat, err := content.LoadCatalog(content.CatalogPath(config.DefaultCatalogCacheDir()))
	if err != nil {
		return fmt.Errorf("%w (run: lumen meditations sync)", err)
	}
	meditations := cat.Meditations
	if meditationsCategory != "" {
		category, err := model.ParseCategory(meditationsCategory)
		if err != nil {
			return fmt.Errorf("invalid --category: %w", err)
		}
		meditations = cat.ForCategory(category)
	}
	if len(meditations) == 0 {
		return writeLines(cmd.OutOrStdout(), []string{"No meditations found."})
	}
	lines := make([]string, 0, len(meditations))
	for _, m := range meditations {
		line := fmt.Sprintf("%-14s %-12s %s", m.Category, m.ID, m.Title)
		if m.Duration > 0 {
			line += fmt.Sprintf(" (%d min)", int(m.Duration.Minutes()))
		}
		lines = append(lines, line)
	}
	return writeLines(cmd.OutOrStdout(), lines)
}
