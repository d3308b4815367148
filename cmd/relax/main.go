// Command relax analyses stress-relaxation data.
//
// Usage:
//
//	relax analyze [flags] FILE
//	relax spectrum --temp T [flags] FILE
//	relax compare [flags] FILE...
//	relax simulate [flags] > curves.csv
//	relax history
//	relax verdict --set Accepted ID...
//	relax delete ID...
//
// Settings fall back to $XDG_CONFIG_HOME/relax/config.toml when the matching
// flag is not given.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-relax/internal/config"
	"github.com/cwbudde/algo-relax/internal/logging"
)

const (
	defaultLogLevel  = "info"
	defaultLogFormat = "text"
)

// rootOptions holds flags shared by every subcommand.
type rootOptions struct {
	configPath string
	dbPath     string
	logLevel   string
	logFormat  string

	file config.FileConfig
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:           "relax",
		Short:         "Stress-relaxation analysis: model fits, kinetics, mastercurves and spectra",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.load(cmd)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", config.DefaultConfigPath(), "path to the TOML config file")
	pf.StringVar(&opts.dbPath, "db", config.DefaultDBPath(), "path to the lab notebook database")
	pf.StringVar(&opts.logLevel, "log-level", defaultLogLevel, "log level (debug, info, warn, error)")
	pf.StringVar(&opts.logFormat, "log-format", defaultLogFormat, "log format (text, json)")

	rootCmd.AddCommand(newAnalyzeCmd(opts))
	rootCmd.AddCommand(newSpectrumCmd(opts))
	rootCmd.AddCommand(newCompareCmd(opts))
	rootCmd.AddCommand(newSimulateCmd(opts))
	rootCmd.AddCommand(newHistoryCmd(opts))
	rootCmd.AddCommand(newVerdictCmd(opts))
	rootCmd.AddCommand(newDeleteCmd(opts))

	return rootCmd
}

func (o *rootOptions) load(cmd *cobra.Command) error {
	cfg, err := config.LoadConfig(o.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	o.file = cfg

	applyStringConfig(cmd, "db", &o.dbPath, cfg.Store.Path)
	applyStringConfig(cmd, "log-level", &o.logLevel, cfg.Log.Level)
	applyStringConfig(cmd, "log-format", &o.logFormat, cfg.Log.Format)

	level, err := logging.ParseLevel(o.logLevel)
	if err != nil {
		return err
	}
	switch o.logFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", o.logFormat)
	}
	logging.Init(level, o.logFormat, cmd.ErrOrStderr())
	return nil
}
