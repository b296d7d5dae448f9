package main

import (
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// buildVersion is overridable at link time (-ldflags "-X main.buildVersion=...").
var buildVersion = "dev"

var (
	configPath string
	verbose    bool
	resolution int
)

// newRootCommand builds the blossomdecode command tree. Every run gets a
// fresh run ID logged as a field on every subsequent log line, and the
// optional --config file's Resolution/LogLevel fill in anything the
// command-specific flags don't override.
func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "blossomdecode",
		Short:        "Minimum-weight perfect matching decoder for detector error models",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML config file")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().IntVar(&resolution, "resolution", 0, "discretization level count (overrides config)")

	root.AddCommand(newDecodeCommand())
	root.AddCommand(newValidateCommand())
	root.AddCommand(newVersionCommand())
	return root
}

// runContext bundles the per-invocation logger and resolved config that
// every subcommand needs.
type runContext struct {
	log        *logrus.Entry
	resolution int
}

func newRunContext() (*runContext, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if resolution > 0 {
		cfg.Resolution = resolution
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	if verbose {
		level = logrus.DebugLevel
	}

	logger := logrus.New()
	logger.SetLevel(level)
	entry := logger.WithField("run_id", uuid.NewString())

	return &runContext{log: entry, resolution: cfg.Resolution}, nil
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
