package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"fluentkit/internal/driver"
	"fluentkit/internal/fallback"
	"fluentkit/internal/pseudo"
	"fluentkit/internal/resmgr"
	"fluentkit/internal/value"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [flags] MESSAGE-ID[.attr] [file.ftl...]",
	Short: "Format a message through the locale fallback chain",
	Long: `Fmt resolves a message and prints the result. Resources come from the
given files, from --manifest, or from an l10n.toml found in the current
directory or its parents.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFmt,
}

func init() {
	fmtCmd.Flags().StringSlice("locale", nil, "requested locales in preference order (default $FLUENTKIT_LOCALES)")
	fmtCmd.Flags().String("manifest", "", "l10n.toml describing the resources")
	fmtCmd.Flags().String("args", "", "YAML file with message arguments")
	fmtCmd.Flags().StringArray("arg", nil, "message argument as name=value (repeatable)")
	fmtCmd.Flags().String("pseudo", "", "pseudo-localize the output (accented|flipped)")
	fmtCmd.Flags().Bool("no-isolating", false, "do not wrap placeables in Unicode isolation marks")
	fmtCmd.Flags().Bool("no-cache", false, "do not use the parse cache")
	fmtCmd.Flags().String("cache-dir", "", "parse cache directory")
	fmtCmd.Flags().Int("suggest", 3, "how many similar ids to suggest for a missing message")
}

func runFmt(cmd *cobra.Command, args []string) error {
	opts, err := localizeOptions(cmd, args[1:])
	if err != nil {
		return err
	}
	msgArgs, err := messageArgs(cmd)
	if err != nil {
		return err
	}
	suggest, err := cmd.Flags().GetInt("suggest")
	if err != nil {
		return fmt.Errorf("failed to get suggest flag: %w", err)
	}

	done := current.timer.Track("load")
	l, err := driver.NewLocalizer(cmd.Context(), opts)
	done("")
	if err != nil {
		return err
	}
	if err := printDiagnostics(cmd.OutOrStdout(), l.Bag, l.FileSet, "pretty"); err != nil {
		return err
	}

	done = current.timer.Track("format")
	out, errs, err := l.Format(cmd.Context(), args[0], msgArgs)
	done("")
	var nf *fallback.NotFoundError
	if errors.As(err, &nf) {
		if ids := l.Suggest(nf.ID, suggest); len(ids) > 0 && !current.quiet {
			fmt.Fprintf(os.Stderr, "did you mean: %s?\n", strings.Join(ids, ", "))
		}
		return err
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), out)
	return printDiagnostics(cmd.OutOrStdout(), driver.ErrorDiagnostics(errs, current.cfg.MaxDiagnostics), nil, "pretty")
}

// localizeOptions merges fmt flags with the environment settings.
func localizeOptions(cmd *cobra.Command, files []string) (driver.LocalizeOptions, error) {
	flags := cmd.Flags()
	opts := driver.LocalizeOptions{
		Files:          files,
		Locales:        current.cfg.Locales,
		NoIsolating:    !current.cfg.Isolating,
		CacheDir:       current.cfg.CacheDir,
		NoCache:        current.cfg.NoCache,
		MaxDiagnostics: current.cfg.MaxDiagnostics,
	}

	requested, err := flags.GetStringSlice("locale")
	if err != nil {
		return opts, fmt.Errorf("failed to get locale flag: %w", err)
	}
	if len(requested) > 0 {
		opts.Locales = opts.Locales[:0:0]
		for _, s := range requested {
			tag, err := language.Parse(s)
			if err != nil {
				return opts, fmt.Errorf("invalid locale %q: %w", s, err)
			}
			opts.Locales = append(opts.Locales, tag)
		}
	}

	if opts.Manifest, err = flags.GetString("manifest"); err != nil {
		return opts, fmt.Errorf("failed to get manifest flag: %w", err)
	}
	if opts.Manifest == "" && len(files) == 0 {
		path, ok, err := resmgr.FindManifest(".")
		if err != nil {
			return opts, err
		}
		if !ok {
			return opts, fmt.Errorf("no FTL files given and no %s found", resmgr.ManifestName)
		}
		opts.Manifest = path
	}

	pseudoName := current.cfg.Pseudo
	if flags.Changed("pseudo") {
		if pseudoName, err = flags.GetString("pseudo"); err != nil {
			return opts, fmt.Errorf("failed to get pseudo flag: %w", err)
		}
	}
	strategy, ok := pseudo.ParseStrategy(pseudoName)
	if !ok {
		return opts, fmt.Errorf("unknown pseudo strategy %q (expected accented|flipped)", pseudoName)
	}
	opts.Pseudo = strategy

	noIsolating, err := flags.GetBool("no-isolating")
	if err != nil {
		return opts, fmt.Errorf("failed to get no-isolating flag: %w", err)
	}
	opts.NoIsolating = opts.NoIsolating || noIsolating
	noCache, err := flags.GetBool("no-cache")
	if err != nil {
		return opts, fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	opts.NoCache = opts.NoCache || noCache
	if flags.Changed("cache-dir") {
		if opts.CacheDir, err = flags.GetString("cache-dir"); err != nil {
			return opts, fmt.Errorf("failed to get cache-dir flag: %w", err)
		}
	}
	return opts, nil
}

// messageArgs collects --args and --arg; --arg wins on conflicts.
func messageArgs(cmd *cobra.Command) (value.Args, error) {
	var out value.Args
	path, err := cmd.Flags().GetString("args")
	if err != nil {
		return out, fmt.Errorf("failed to get args flag: %w", err)
	}
	if path != "" {
		if out, err = driver.LoadArgs(path); err != nil {
			return out, fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	pairs, err := cmd.Flags().GetStringArray("arg")
	if err != nil {
		return out, fmt.Errorf("failed to get arg flag: %w", err)
	}
	for _, pair := range pairs {
		if err := driver.ParseArg(&out, pair); err != nil {
			return out, err
		}
	}
	return out, nil
}
