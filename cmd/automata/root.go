package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "automata",
	Short: "Automata simulates and analyzes finite automata",
	Long: `Automata runs words through DFAs and NFAs (with ε-transitions), reports
static properties such as completeness, unreachable and dead states, and
exports diagrams. Automata are read from YAML/JSON files or from a catalog
directory of Markdown, JSON and YAML documents.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("dir", ".", "Catalog directory used to resolve automaton IDs")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging on stderr")
}

// globalFlags reads the persistent flags.
func globalFlags(cmd *cobra.Command) (dir string, debug bool) {
	dir, _ = cmd.Flags().GetString("dir")
	debug, _ = cmd.Flags().GetBool("debug")
	return dir, debug
}
