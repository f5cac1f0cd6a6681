package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/spf13/cobra"

	"github.com/matheuskafuri/classicnews/internal/config"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagConfig  string
	flagDebug   bool
	flagNoColor bool
)

var rootCmd = &cobra.Command{
	Use:   "classicnews",
	Short: "Terminal news portal",
	Long:  "classicnews browses a static news portal: categories, breaking news, search, weather and AI summaries.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if flagNoColor {
			color.NoColor = true
		}
	},
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path or URL of the config override")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "dbg", false, "debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(prefsCmd)
	rootCmd.AddCommand(summarizeCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(schemaCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "classicnews %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}

// setupLog configures lgr and the std logger. Colors are used only for
// terminal output.
func setupLog(out io.Writer, dbg, colored bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Out(out), lgr.Err(out)}
	if dbg {
		logOpts = append(logOpts, lgr.Debug, lgr.Msec, lgr.LevelBraces, lgr.CallerFile, lgr.CallerFunc)
	}

	if colored && !color.NoColor {
		colorizer := lgr.Mapper{
			ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
			WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
			InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
			DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
			CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
			TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
		}
		logOpts = append(logOpts, lgr.Map(colorizer))
	}
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}

// openLogFile opens the interactive-mode log, creating its directory.
func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("creating log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) //nolint:gosec // path from xdg
	if err != nil {
		return nil, fmt.Errorf("opening log: %w", err)
	}
	return f, nil
}

// loadConfig reads the effective config and re-arms the logger so that
// configured keys are masked.
func loadConfig(ctx context.Context, out io.Writer, colored bool) (*config.Config, error) {
	cfg, err := config.Load(ctx, flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if secs := cfg.Secrets(); len(secs) > 0 {
		setupLog(out, flagDebug, colored, secs...)
	}
	return cfg, nil
}

// oneShot prepares logging and config for non-interactive commands.
func oneShot(cmd *cobra.Command) (*config.Config, error) {
	setupLog(cmd.ErrOrStderr(), flagDebug, true)
	return loadConfig(commandContext(cmd), cmd.ErrOrStderr(), true)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
