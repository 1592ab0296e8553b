package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fluentkit/internal/driver"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [dir|file.ftl]",
	Short: "Check FTL resources for syntax errors and broken references",
	Long: `Check parses every .ftl file under the directory in parallel. Files of
one directory form a bundle: references to messages and terms missing from
all of them are reported.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "diagnostics format (pretty|json|short)")
	checkCmd.Flags().Bool("progress", false, "show per-file progress when stdout is a terminal")
	checkCmd.Flags().IntP("jobs", "j", 0, "parallel parse jobs (0: number of CPUs)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	progress, err := cmd.Flags().GetBool("progress")
	if err != nil {
		return fmt.Errorf("failed to get progress flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}

	opts := driver.CheckOptions{MaxDiagnostics: current.cfg.MaxDiagnostics, Jobs: jobs}
	done := current.timer.Track("check")
	var result *driver.CheckResult
	if progress && format == "pretty" && isTerminal(os.Stdout) {
		result, err = runCheckWithUI(cmd, dir, opts)
	} else {
		result, err = driver.CheckDir(cmd.Context(), dir, opts)
	}
	if err != nil {
		done("")
		return fmt.Errorf("check failed: %w", err)
	}
	done(plural(len(result.Files), "file", "files"))

	bag := result.Diagnostics()
	if err := printDiagnostics(cmd.OutOrStdout(), bag, result.FileSet, format); err != nil {
		return err
	}
	if format == "pretty" && !current.quiet {
		errs, warnings := countSeverities(bag)
		fmt.Fprintf(cmd.ErrOrStderr(), "checked %s: %s, %s\n",
			plural(len(result.Files), "file", "files"),
			plural(errs, "error", "errors"),
			plural(warnings, "warning", "warnings"))
	}
	if result.HasErrors() {
		return errReported
	}
	return nil
}
