// Package cmd implements the girder command line interface.
package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/harrison/girder/internal/config"
)

// Version is injected at build time via -ldflags.
var Version = "dev"

// NewRootCommand creates the root cobra command for girder.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "girder",
		Short: "Deterministic glob expansion for build descriptions",
		Long: `Girder expands include/exclude glob patterns against a directory tree
and produces a sorted, deduplicated list of matching paths.

Patterns support per-segment wildcards (?, *, [...]) and the recursive
token **. A leading ! turns a pattern into an exclusion. Output is
byte-identical across runs and platforms for the same tree, and the
directories read along the way can be recorded for incremental-rebuild
invalidation.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Optional .env with GIRDER_* overrides; absence is fine.
			_ = godotenv.Load()
		},
	}

	cmd.PersistentFlags().String("config", config.DefaultPath, "path to the YAML config file")
	cmd.PersistentFlags().String("log-level", "", "log verbosity: trace, debug, info, warn, error")

	cmd.AddCommand(NewGlobCommand())
	cmd.AddCommand(NewMatchCommand())

	return cmd
}

// loadConfig resolves configuration for a subcommand: the YAML file named by
// --config merged over defaults and environment, then the --log-level flag
// on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}

	return cfg, nil
}
