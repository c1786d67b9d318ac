package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/girder/internal/glob"
)

// NewMatchCommand creates the match subcommand, a scripting building block
// that tests one name against one pattern segment.
func NewMatchCommand() *cobra.Command {
	var ignoreCase bool

	cmd := &cobra.Command{
		Use:   "match NAME PATTERN",
		Short: "Test a single path segment against a pattern segment",
		Long: `Match one path segment against one wildcard pattern segment and print
"true" or "false". Neither argument may contain a path separator; use
the glob command to expand patterns spanning directories.`,
		Example: `  girder match foo.c '*.[ch]'
  girder match --ignore-case README.MD 'readme.*'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			caseSensitive := cfg.CaseSensitive
			if ignoreCase {
				caseSensitive = false
			}

			fmt.Fprintln(cmd.OutOrStdout(), glob.Match(args[0], args[1], caseSensitive))
			return nil
		},
	}

	cmd.Flags().BoolVar(&ignoreCase, "ignore-case", false, "match case-insensitively")

	return cmd
}
