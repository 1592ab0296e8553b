package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fluentkit/internal/diagfmt"
	"fluentkit/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] [file.ftl]",
	Short: "Tokenize an FTL resource",
	Long:  `Tokenize prints the raw token stream of an FTL file, or of a built-in sample when no file is given`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	done := current.timer.Track("tokenize")
	var result *driver.TokenizeResult
	if len(args) == 0 {
		result = driver.TokenizeSource("<sample>", []byte(driver.SampleFTL), current.cfg.MaxDiagnostics)
	} else if result, err = driver.Tokenize(args[0], current.cfg.MaxDiagnostics); err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}
	done(fmt.Sprintf("%d tokens", len(result.Tokens)))

	// лексические проблемы идут в stderr, токены в stdout
	if err := printDiagnostics(cmd.OutOrStdout(), result.Bag, result.FileSet, "pretty"); err != nil {
		return err
	}

	switch format {
	case "pretty":
		return diagfmt.FormatTokensPretty(cmd.OutOrStdout(), result.Tokens, result.FileSet)
	case "json":
		return diagfmt.FormatTokensJSON(cmd.OutOrStdout(), result.Tokens)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
