package main

import (
	"github.com/aretw0/automata/internal/cli"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts the engine as an MCP Server, so AI agents can simulate, analyze
and sample automata, inline or from the catalog.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, debug := globalFlags(cmd)
		if !cmd.Flags().Changed("dir") && len(args) > 0 {
			dir = args[0]
		}
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		return cli.ServeMCP(sigCtx, cli.MCPOptions{
			Dir:       dir,
			Transport: transport,
			Port:      port,
			Debug:     debug,
		})
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().StringP("transport", "t", cli.TransportStdio, "Transport type (stdio, sse)")
	mcpCmd.Flags().IntP("port", "p", 8080, "Port for SSE server")
}
