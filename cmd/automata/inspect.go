package main

import (
	"os"

	"github.com/aretw0/automata/internal/cli"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file|id>",
	Short: "Report the static properties of an automaton",
	Long:  `Classifies the automaton as DFA or NFA and reports its alphabet, completeness, unreachable and dead states, and validation diagnostics.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, debug := globalFlags(cmd)
		format, _ := cmd.Flags().GetString("format")

		return cli.Analyze(cmd.Context(), cli.InspectOptions{
			Dir:    dir,
			Ref:    args[0],
			Format: format,
			Debug:  debug,
			Output: os.Stdout,
		})
	},
}

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <file|id>",
	Short: "Export the automaton as a diagram",
	Long:  `Outputs a Mermaid (graph LR) or Graphviz DOT diagram. With --word, the states and transitions walked by the simulation are highlighted.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, debug := globalFlags(cmd)
		format, _ := cmd.Flags().GetString("format")

		opts := cli.InspectOptions{
			Dir:    dir,
			Ref:    args[0],
			Format: format,
			Debug:  debug,
			Output: os.Stdout,
		}
		if cmd.Flags().Changed("word") {
			word, _ := cmd.Flags().GetString("word")
			opts.Word = &word
		}
		return cli.Graph(cmd.Context(), opts)
	},
}

var sampleCmd = &cobra.Command{
	Use:   "sample <file|id>",
	Short: "List the shortest accepted words",
	Long:  `Enumerates accepted words in shortlex order (shortest first, then alphabetical), starting with the empty word.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, debug := globalFlags(cmd)
		format, _ := cmd.Flags().GetString("format")
		limit, _ := cmd.Flags().GetInt("limit")
		maxLen, _ := cmd.Flags().GetInt("max-length")

		return cli.Sample(cmd.Context(), cli.InspectOptions{
			Dir:       dir,
			Ref:       args[0],
			Format:    format,
			Debug:     debug,
			Output:    os.Stdout,
			Limit:     limit,
			MaxLength: maxLen,
		})
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd, graphCmd, sampleCmd)

	analyzeCmd.Flags().StringP("format", "f", cli.FormatText, "Output format (text, json)")

	graphCmd.Flags().StringP("format", "f", cli.FormatMermaid, "Diagram format (mermaid, dot)")
	graphCmd.Flags().String("word", "", "Highlight the witness path of this word")

	sampleCmd.Flags().StringP("format", "f", cli.FormatText, "Output format (text, json)")
	sampleCmd.Flags().IntP("limit", "n", 10, "Maximum number of words")
	sampleCmd.Flags().Int("max-length", 8, "Longest word length considered")
}
