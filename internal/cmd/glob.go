package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/harrison/girder/internal/deps"
	"github.com/harrison/girder/internal/glob"
	"github.com/harrison/girder/internal/logger"
)

// NewGlobCommand creates the glob subcommand.
func NewGlobCommand() *cobra.Command {
	var (
		rootDir    string
		depsDB     string
		workers    int
		ignoreCase bool
	)

	cmd := &cobra.Command{
		Use:   "glob PATTERN...",
		Short: "Expand glob patterns into a sorted file list",
		Long: `Expand one or more glob patterns against the root directory and print
the matches, one per line, sorted and deduplicated. Prefix a pattern
with ! to exclude its matches from the result.

When a parent build system provides GIRDER_INPUTS, or --deps-db names a
database, every directory listed during expansion is recorded so the
result can be invalidated when directory contents change.`,
		Example: `  girder glob 'src/*.c'
  girder glob --root proj '**/*.cc' '!**/test_*.cc'
  girder glob --deps-db .girder/deps.db '*/*.h'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if rootDir == "" {
				return fmt.Errorf("root directory required")
			}
			log := logger.New(os.Stderr, cfg.LogLevel)

			if workers > 0 {
				cfg.Workers = workers
			}
			if ignoreCase {
				cfg.CaseSensitive = false
			}
			if depsDB != "" {
				cfg.DepsDB = depsDB
			}

			// Dependency recording: the parent pipe and the local
			// database can both be active.
			var recorder deps.Recorder
			if pipe := deps.FromEnv(); pipe != nil {
				defer pipe.Close()
				recorder = deps.Multi(recorder, pipe)
				log.Debugf("reporting dependencies to parent build system")
			}
			var store *deps.Store
			if cfg.DepsDB != "" {
				store, err = deps.NewStore(cfg.DepsDB, rootDir)
				if err != nil {
					return err
				}
				recorder = deps.Multi(recorder, store)
				log.Debugf("recording dependencies to %s (session %s)", cfg.DepsDB, store.Session())
			}

			start := time.Now()
			eng := glob.NewEngine(rootDir, glob.Options{
				Workers:       cfg.Workers,
				CaseSensitive: cfg.CaseSensitive,
				Recorder:      recorder,
			})
			defer eng.Close()

			var col glob.Collector
			for _, pattern := range args {
				if rest, ok := strings.CutPrefix(pattern, "!"); ok {
					eng.Glob(rest, col.Exclude)
				} else {
					eng.Glob(pattern, col.Include)
				}
			}
			paths := col.Result()

			stats := eng.Stats()
			log.Debugf("%d patterns, %d matches, %d directories listed, %d cache hits in %s",
				len(args), len(paths), stats.Listings, stats.Hits,
				time.Since(start).Round(time.Microsecond))

			out := cmd.OutOrStdout()
			for _, p := range paths {
				fmt.Fprintln(out, p)
			}

			if store != nil {
				if err := store.Close(); err != nil {
					return fmt.Errorf("close dependency store: %w", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&rootDir, "root", ".", "directory patterns are resolved against")
	cmd.Flags().StringVar(&depsDB, "deps-db", "", "record directory dependencies into this SQLite database")
	cmd.Flags().IntVar(&workers, "workers", 0, "worker pool size for recursive descent (0 = config value)")
	cmd.Flags().BoolVar(&ignoreCase, "ignore-case", false, "match patterns case-insensitively")

	return cmd
}
