package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"fluentkit/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "fluentkit",
	Short: "Fluent localization toolkit",
	Long:  `fluentkit parses, checks, formats and resolves Fluent (FTL) resources`,

	SilenceUsage:       true,
	SilenceErrors:      true,
	PersistentPreRunE:  prepareRun,
	PersistentPostRunE: finishRun,
}

// errReported: диагностики уже напечатаны, нужен только ненулевой код выхода.
var errReported = errors.New("errors reported")

func init() {
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(formatCmd)
	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги; значения по умолчанию берутся из окружения (FLUENTKIT_*)
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().String("env-file", "", "read settings from this file (default .env)")
	rootCmd.PersistentFlags().String("trace", "off", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-output", "", "trace output file (default stderr)")
	rootCmd.PersistentFlags().String("trace-mode", "stream", "trace storage (stream|ring|both)")
	rootCmd.PersistentFlags().Duration("trace-heartbeat", 0, "emit heartbeat trace events at this interval")
	rootCmd.PersistentFlags().String("cpuprofile", "", "write a CPU profile to this file")
	rootCmd.PersistentFlags().String("memprofile", "", "write a heap profile to this file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace to this file")
}

// main executes the root command. Any error exits with status 1.
func main() {
	rootCmd.Version = version.Version

	err := rootCmd.Execute()
	closeRun()
	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
