package main

import (
	"os"

	"github.com/aretw0/automata/internal/cli"
	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog [dir]",
	Short: "List the automata of a catalog directory",
	Long:  `Lists the IDs of the automata found in the catalog. With --watch, keeps running and re-analyzes every document changed on disk.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, debug := globalFlags(cmd)
		if !cmd.Flags().Changed("dir") && len(args) > 0 {
			dir = args[0]
		}
		watch, _ := cmd.Flags().GetBool("watch")

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		return cli.Catalog(sigCtx, cli.CatalogOptions{
			Dir:    dir,
			Watch:  watch,
			Debug:  debug,
			Output: os.Stdout,
		})
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.Flags().Bool("watch", false, "Watch the catalog for changes")
}
