package main

import (
	"os"

	"github.com/aretw0/automata/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Exposes the engine as a JSON API over HTTP. Clients can simulate and
analyze inline automata, store and edit named automata, and subscribe to
their changes. Catalog automata from --dir are served read-only.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, debug := globalFlags(cmd)
		port, _ := cmd.Flags().GetString("port")
		validate, _ := cmd.Flags().GetBool("validate")
		redisAddr, _ := cmd.Flags().GetString("redis")
		redisPrefix, _ := cmd.Flags().GetString("redis-prefix")
		redisTTL, _ := cmd.Flags().GetDuration("redis-ttl")

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		return cli.Serve(sigCtx, cli.ServeOptions{
			Dir:         dir,
			Port:        port,
			Validate:    validate,
			Debug:       debug,
			RedisAddr:   redisAddr,
			RedisPrefix: redisPrefix,
			RedisTTL:    redisTTL,
			Output:      os.Stdout,
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().Bool("validate", false, "Validate requests against the OpenAPI document")
	serveCmd.Flags().String("redis", "", "Redis address (host:port) for the automaton store; in-memory when empty")
	serveCmd.Flags().String("redis-prefix", "", "Key prefix for the Redis store")
	serveCmd.Flags().Duration("redis-ttl", 0, "Expiration of stored automata (0 keeps them forever)")
}
