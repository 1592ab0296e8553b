package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"fluentkit/internal/config"
	"fluentkit/internal/observ"
	"fluentkit/internal/prof"
)

// runSettings: итоговые настройки запуска: окружение, поверх него флаги.
type runSettings struct {
	cfg     config.Config
	quiet   bool
	timings bool
	timer   *observ.Timer
	cleanup func()
}

var current = runSettings{timer: observ.NewTimer(), cleanup: func() {}}

func prepareRun(cmd *cobra.Command, _ []string) error {
	flags := cmd.Root().PersistentFlags()
	envFile, err := flags.GetString("env-file")
	if err != nil {
		return fmt.Errorf("failed to get env-file flag: %w", err)
	}
	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}
	if err := applyFlags(cmd, &cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	current.cfg = cfg
	if current.quiet, err = flags.GetBool("quiet"); err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if current.timings, err = flags.GetBool("timings"); err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	color.NoColor = !useColor(os.Stdout)

	cleanup, err := setupTracing(cmd, cfg)
	if err != nil {
		return err
	}
	current.cleanup = cleanup

	profOpts, err := profileOptions(cmd)
	if err != nil {
		return err
	}
	if profOpts.Enabled() {
		session, err := prof.Start(profOpts)
		if err != nil {
			return fmt.Errorf("failed to start profiling: %w", err)
		}
		traceCleanup := current.cleanup
		current.cleanup = func() {
			if err := session.Stop(); err != nil {
				fmt.Fprintf(os.Stderr, "profile: %v\n", err)
			}
			traceCleanup()
		}
	}
	return nil
}

func profileOptions(cmd *cobra.Command) (prof.Options, error) {
	flags := cmd.Root().PersistentFlags()
	var opts prof.Options
	var err error
	if opts.CPU, err = flags.GetString("cpuprofile"); err != nil {
		return opts, fmt.Errorf("failed to get cpuprofile flag: %w", err)
	}
	if opts.Mem, err = flags.GetString("memprofile"); err != nil {
		return opts, fmt.Errorf("failed to get memprofile flag: %w", err)
	}
	if opts.Trace, err = flags.GetString("runtime-trace"); err != nil {
		return opts, fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	return opts, nil
}

// applyFlags overrides cfg with the persistent flags given explicitly.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Root().PersistentFlags()
	var err error
	if flags.Changed("color") {
		if cfg.Color, err = flags.GetString("color"); err != nil {
			return fmt.Errorf("failed to get color flag: %w", err)
		}
	}
	if flags.Changed("max-diagnostics") {
		if cfg.MaxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
			return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
	}
	if flags.Changed("trace") {
		if cfg.TraceLevel, err = flags.GetString("trace"); err != nil {
			return fmt.Errorf("failed to get trace flag: %w", err)
		}
	}
	if flags.Changed("trace-output") {
		if cfg.TraceOutput, err = flags.GetString("trace-output"); err != nil {
			return fmt.Errorf("failed to get trace-output flag: %w", err)
		}
	}
	return nil
}

func finishRun(cmd *cobra.Command, _ []string) error {
	closeRun()
	if current.timings && !current.quiet {
		return current.timer.WriteSummary(cmd.ErrOrStderr())
	}
	return nil
}

// useColor решает, красить ли вывод в f.
func useColor(f *os.File) bool {
	switch current.cfg.Color {
	case "on":
		return true
	case "off":
		return false
	}
	return isTerminal(f)
}

// closeRun stops profiling and flushes the tracer once. PersistentPostRunE
// is skipped when a command fails, so main calls it too.
func closeRun() {
	current.cleanup()
	current.cleanup = func() {}
}
