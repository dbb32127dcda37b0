// Package cli defines the Cobra command tree for the compress CLI.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// version, commit, date are set via -ldflags at build time.
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "compress",
	Short: "Statistical prompt compression for LLM inputs",
	Long: `Compress reduces the token count of LLM prompts by dropping low-value
words while pinning identifiers, code blocks, numbers, negations, and
domain terms.

Scoring is purely statistical (IDF, position, part-of-speech, entity and
entropy heuristics) — no model call is needed to compress.

Run 'compress run input.txt' to compress a file, or pipe text on stdin.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute(v, c, d string) {
	version, commit, date = v, c, d
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(
		newRunCmd(),
		newBatchCmd(),
		newWatchCmd(),
		newStatsCmd(),
		newEvaluateCmd(),
		newMCPCmd(),
		newVersionCmd(),
	)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("compress %s (commit %s, built %s)\n", version, commit, date)
		},
	}
}
