package main

import (
	"os"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/cli"
	"github.com/spf13/cobra"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <file|id> [word...]",
	Short: "Run words through an automaton",
	Long: `Simulates each word against the automaton and prints the verdict with
the witness path. Words may also be passed as a comma-separated batch with
--words; an empty entry is the empty word (ε).

Without words, an interactive prompt reads one batch per line.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, debug := globalFlags(cmd)
		step, _ := cmd.Flags().GetBool("step")
		plain, _ := cmd.Flags().GetBool("plain")
		batch, _ := cmd.Flags().GetString("words")

		words := args[1:]
		if cmd.Flags().Changed("words") {
			words = append(words, automata.ParseWords(batch)...)
		}

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		return cli.Simulate(sigCtx, cli.SimulateOptions{
			Dir:    dir,
			Ref:    args[0],
			Words:  words,
			Step:   step,
			Plain:  plain,
			Debug:  debug,
			Input:  os.Stdin,
			Output: os.Stdout,
		})
	},
}

func init() {
	rootCmd.AddCommand(simulateCmd)
	simulateCmd.Flags().StringP("words", "w", "", "Comma-separated batch of words")
	simulateCmd.Flags().Bool("step", false, "Print the witness path frame by frame")
	simulateCmd.Flags().Bool("plain", false, "Disable colours and markdown rendering")
}
