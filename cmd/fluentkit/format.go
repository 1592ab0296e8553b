package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fluentkit/internal/driver"
)

var formatCmd = &cobra.Command{
	Use:   "format [flags] file.ftl...",
	Short: "Print FTL resources in canonical form",
	Long: `Format parses each file and serializes it back to canonical FTL.
Without --write the result goes to stdout.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFormat,
}

func init() {
	formatCmd.Flags().Bool("with-junk", false, "keep unparsable entries in the output")
	formatCmd.Flags().BoolP("write", "w", false, "rewrite files in place")
	formatCmd.Flags().Bool("check", false, "only report files that are not formatted")
}

func runFormat(cmd *cobra.Command, args []string) error {
	withJunk, err := cmd.Flags().GetBool("with-junk")
	if err != nil {
		return fmt.Errorf("failed to get with-junk flag: %w", err)
	}
	write, err := cmd.Flags().GetBool("write")
	if err != nil {
		return fmt.Errorf("failed to get write flag: %w", err)
	}
	check, err := cmd.Flags().GetBool("check")
	if err != nil {
		return fmt.Errorf("failed to get check flag: %w", err)
	}

	failed := false
	for _, path := range args {
		done := current.timer.Track("format " + path)
		res, err := driver.Format(cmd.Context(), path, withJunk, current.cfg.MaxDiagnostics)
		done("")
		if err != nil {
			return fmt.Errorf("format failed: %w", err)
		}
		if err := printDiagnostics(cmd.OutOrStdout(), res.Bag, res.FileSet, "pretty"); err != nil {
			return err
		}
		if res.Bag.HasErrors() && !withJunk {
			// без --with-junk сломанные записи пропали бы из файла
			failed = true
			continue
		}

		switch {
		case check:
			if res.Changed {
				fmt.Fprintln(cmd.OutOrStdout(), path)
				failed = true
			}
		case write:
			if !res.Changed {
				continue
			}
			info, err := os.Stat(path)
			if err != nil {
				return err
			}
			if err := os.WriteFile(path, res.Formatted, info.Mode().Perm()); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
		default:
			if _, err := cmd.OutOrStdout().Write(res.Formatted); err != nil {
				return err
			}
		}
	}
	if failed {
		return errReported
	}
	return nil
}
