// Package cli implements the tokseq command tree, grounded on
// memvra/internal/cli's root.go: a single rootCmd, an Execute entry point
// that threads build-time version metadata through, and subcommands
// registered from init().
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:           "tokseq",
	Short:         "Learn and apply composable integer sequence tokenizers",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newLearnCmd())
	rootCmd.AddCommand(newEncodeCmd())
	rootCmd.AddCommand(newDecodeCmd())
	rootCmd.AddCommand(newRoundtripCmd())
}

// Execute runs the root command, recording build metadata injected via
// -ldflags by cmd/tokseq/main.go.
func Execute(v, c, d string) {
	version, commit, date = v, c, d

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "tokseq %s (commit %s, built %s)\n", version, commit, date)
			return nil
		},
	}
}
