package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	var opts traceOptions

	cmd := &cobra.Command{
		Use:   "run <script.yaml>",
		Short: "Replay a script",
		Long: `Replay a script of list snapshots. A script looks like:

  key: id        # optional, field identifying mapping items
  steps:
    - [a, b, c]
    - [c, a, b]`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read script: %w", err)
			}

			script, err := ParseScript(data)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			return Trace(cmd.OutOrStdout(), script, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.NoColor, "no-color", false, "Disable colored output")
	cmd.Flags().BoolVar(&opts.Summary, "summary", false, "Print totals once the script is replayed")

	return cmd
}
