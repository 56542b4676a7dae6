package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// set at build time
var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "keytrace",
		Short: "Replay keyed list updates and trace what gets created, moved and destroyed",
		Long: `keytrace feeds a sequence of list snapshots to a keyed mapping and prints,
for every snapshot, the elements that were mapped, moved or destroyed.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "keytrace %s\n", Version)
		},
	})

	return rootCmd
}
