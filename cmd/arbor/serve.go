package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/arbor/internal/cli"
)

var serveOpts cli.ServeOptions

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Serves forms over HTTP: the query-string form protocol on /, a JSON API under
/api validated against the embedded OpenAPI document, and server-sent events for
session changes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := serveOpts
		opts.Options = common
		return cli.Serve(cmd.Context(), opts)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	f := serveCmd.Flags()
	f.StringVarP(&serveOpts.Addr, "addr", "a", ":8080", "Address to listen on")
	f.StringVar(&serveOpts.DefaultSchema, "schema", "", "Schema opened by / when none is requested")
	f.BoolVar(&serveOpts.Metrics, "metrics", false, "Expose Prometheus metrics on /metrics")
}
