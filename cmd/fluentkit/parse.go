package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"fluentkit/internal/astcodec"
	"fluentkit/internal/diagfmt"
	"fluentkit/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.ftl",
	Short: "Parse an FTL resource and print its AST",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "tree", "output format (tree|json)")
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "tree", "json":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	done := current.timer.Track("parse")
	result, err := driver.Parse(cmd.Context(), args[0], current.cfg.MaxDiagnostics)
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}
	done(fmt.Sprintf("%d entries", len(result.Resource.Body)))

	if err := printDiagnostics(cmd.OutOrStdout(), result.Bag, result.FileSet, "pretty"); err != nil {
		return err
	}

	// AST печатаем даже с ошибками: сломанные записи видны как Junk
	out := cmd.OutOrStdout()
	if format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(astcodec.Encode(result.Resource)); err != nil {
			return err
		}
	} else if err := diagfmt.FormatTree(out, result.Resource); err != nil {
		return err
	}

	if result.Bag.HasErrors() {
		return errReported
	}
	return nil
}
