package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/harrison/linekit/internal/balance"
	"github.com/harrison/linekit/internal/config"
	"github.com/harrison/linekit/internal/display"
	"github.com/harrison/linekit/internal/fileutil"
	"github.com/harrison/linekit/internal/logger"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// NewCheckCommand creates and returns the check subcommand
func NewCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [file-or-directory]...",
		Short: "Check that braces and parentheses are balanced",
		Long: `Scan files character by character for { } ( ) and report:
  - a closer with nothing open:   Error: Unexpected ')' at line 3
  - a closer of the wrong kind:   Error: Mismatch at line 9. Found '}', expected ')' (opened at line 4)
  - brackets left open at EOF, most recently opened first

Scanning stops at the first unexpected or mismatched closer. Brackets inside
strings, comments and markup are counted like any others.

With no arguments the configured target (pages/Profile.tsx by default) is
checked. Directories are expanded to files with the configured extensions.

Exit code: 0 unless a file cannot be read, or --exit-code is set and a file
is unbalanced`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			cfg.MergeWithFlags(config.Flags{
				ReportSuccess: changedBool(cmd, "report-success"),
				ExitCode:      changedBool(cmd, "exit-code"),
				Concurrency:   changedInt(cmd, "concurrency"),
			})
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			return runCheck(cmd.Context(), args, cfg, cmd.OutOrStdout(), cmd.ErrOrStderr(), newLogger(cmd, cfg))
		},
		SilenceUsage: true,
	}

	cmd.Flags().Bool("report-success", false, "Print \""+balance.SuccessMessage+"\" for balanced files")
	cmd.Flags().Bool("exit-code", false, "Exit with status 1 when any file is unbalanced")
	cmd.Flags().Int("concurrency", 0, "Files scanned in parallel (default from config)")

	return cmd
}

// runCheck checks every file named by paths and writes diagnostics to out in
// path order.
func runCheck(ctx context.Context, paths []string, cfg *config.Config, out, errOut io.Writer, log logger.Logger) error {
	if len(paths) == 0 {
		paths = []string{cfg.Check.Target}
	}

	files, err := expandPaths(paths, cfg, errOut)
	if err != nil {
		return err
	}

	results := make([]balance.Result, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Check.Concurrency)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			log.LogTrace(fmt.Sprintf("scanning %s", file))
			result, err := balance.CheckFile(file)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	unbalanced := 0
	for i, result := range results {
		if len(files) > 1 {
			fmt.Fprintf(out, "==> %s <==\n", files[i])
		}
		if err := result.Report(out); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		if result.OK() {
			if cfg.Check.ReportSuccess {
				fmt.Fprintln(out, balance.SuccessMessage)
			}
			continue
		}
		unbalanced++
		log.LogDebug(fmt.Sprintf("%s: %s", files[i], result.Kind))
	}

	log.LogDebug(fmt.Sprintf("checked %d file(s), %d unbalanced", len(files), unbalanced))

	if unbalanced > 0 && cfg.Check.ExitCode {
		return fmt.Errorf("%d of %d file(s): %w", unbalanced, len(files), balance.ErrImbalanced)
	}
	return nil
}

// expandPaths replaces directory arguments with the source files beneath
// them. Other arguments pass through untouched so that unreadable paths
// surface as file access errors from the checker.
func expandPaths(paths []string, cfg *config.Config, errOut io.Writer) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			files = append(files, path)
			continue
		}

		found, err := fileutil.ScanDirectory(path, fileutil.ScanOptions{
			Extensions:  cfg.Check.Extensions,
			ExcludeDirs: cfg.Check.ExcludeDirs,
		})
		if err != nil {
			return nil, err
		}
		if len(found) == 0 {
			display.Warning{
				Title:      fmt.Sprintf("No source files found in %s", path),
				Suggestion: "Adjust check.extensions in .linekit/config.yaml",
			}.Display(errOut)
		}
		files = append(files, found...)
	}
	return files, nil
}
