package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/harrison/linekit/internal/config"
	"github.com/harrison/linekit/internal/history"
	"github.com/spf13/cobra"
)

// NewHistoryCommand creates and returns the history subcommand
func NewHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List journaled replacements, newest first",
		Long: `List replacements recorded while history.enabled is true in
.linekit/config.yaml.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			limit, _ := cmd.Flags().GetInt("limit")
			return runHistory(cmd.Context(), cfg, limit, cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}

	cmd.Flags().Int("limit", 20, "Maximum number of entries to show (0 = all)")

	return cmd
}

func runHistory(ctx context.Context, cfg *config.Config, limit int, out io.Writer) error {
	if _, err := os.Stat(cfg.History.DBPath); os.IsNotExist(err) {
		if !cfg.History.Enabled {
			fmt.Fprintln(out, "History is disabled. Set history.enabled: true in .linekit/config.yaml to record replacements.")
			return nil
		}
		fmt.Fprintln(out, "No replacements recorded")
		return nil
	}

	store, err := history.NewStore(cfg.History.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer store.Close()

	records, err := store.Recent(ctx, limit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(out, "No replacements recorded")
		return nil
	}

	for _, rec := range records {
		fmt.Fprintln(out, rec.Summary())
	}
	return nil
}
