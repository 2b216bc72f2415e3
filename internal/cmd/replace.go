package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/harrison/linekit/internal/config"
	"github.com/harrison/linekit/internal/display"
	"github.com/harrison/linekit/internal/history"
	"github.com/harrison/linekit/internal/logger"
	"github.com/harrison/linekit/internal/splice"
	"github.com/spf13/cobra"
)

// NewReplaceCommand creates and returns the replace subcommand
func NewReplaceCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replace",
		Short: "Replace an inclusive range of lines with the contents of another file",
		Long: `Overwrite lines --start through --end (1-indexed, inclusive) of the target
file with every line of the replacement file. No backup is made.

A range reaching past the end of the target is truncated, like a slice, and a
warning is printed; --strict refuses such ranges instead. --end may be one
less than --start to insert without removing anything.

Defaults: --target pages/Profile.tsx --replacement replacement_list.tsx
--start 1001 --end 1028, overridable in .linekit/config.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			cfg.MergeWithFlags(config.Flags{
				Target:      changedString(cmd, "target"),
				Replacement: changedString(cmd, "replacement"),
				StartLine:   changedInt(cmd, "start"),
				EndLine:     changedInt(cmd, "end"),
				StrictRange: changedBool(cmd, "strict"),
			})
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			return runReplace(cmd.Context(), cfg, cmd.OutOrStdout(), cmd.ErrOrStderr(), newLogger(cmd, cfg))
		},
		SilenceUsage: true,
	}

	cmd.Flags().String("target", "", "File whose lines are replaced")
	cmd.Flags().String("replacement", "", "File providing the new lines")
	cmd.Flags().Int("start", 0, "First line to replace (1-indexed)")
	cmd.Flags().Int("end", 0, "Last line to replace (inclusive)")
	cmd.Flags().Bool("strict", false, "Fail instead of truncating a range past the end of the target")

	return cmd
}

// runReplace performs the configured replacement and journals it when
// history is enabled.
func runReplace(ctx context.Context, cfg *config.Config, out, errOut io.Writer, log logger.Logger) error {
	chunk := splice.Chunk{Start: cfg.Replace.StartLine, End: cfg.Replace.EndLine}

	replacer := splice.NewReplacer(out, log)
	replacer.Strict = cfg.Replace.StrictRange

	outcome, err := replacer.Replace(ctx, cfg.Replace.Target, cfg.Replace.Replacement, chunk)
	if err != nil {
		return err
	}

	if outcome.Truncated {
		display.Warning{
			Title:      fmt.Sprintf("Lines %s extend past the end of the target", chunk),
			Message:    fmt.Sprintf("%s had %d lines; the range was truncated", outcome.TargetPath, outcome.LinesBefore),
			Files:      []string{outcome.TargetPath},
			Suggestion: "Pass --strict to refuse out-of-range chunks",
		}.Display(errOut)
	}

	if cfg.History.Enabled {
		if err := journal(ctx, cfg.History.DBPath, outcome); err != nil {
			// The target has already been rewritten.
			log.LogWarn(fmt.Sprintf("failed to record replacement history: %v", err))
		}
	}

	return nil
}

func journal(ctx context.Context, dbPath string, outcome *splice.Outcome) error {
	store, err := history.NewStore(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	return store.Add(ctx, &history.Record{
		TargetPath:      outcome.TargetPath,
		ReplacementPath: outcome.ReplacementPath,
		StartLine:       outcome.Chunk.Start,
		EndLine:         outcome.Chunk.End,
		LinesBefore:     outcome.LinesBefore,
		LinesAfter:      outcome.LinesAfter,
		Truncated:       outcome.Truncated,
	})
}
