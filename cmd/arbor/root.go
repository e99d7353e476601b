package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/arbor/internal/cli"
)

// common holds the persistent flags shared by every command.
var common cli.Options

var rootCmd = &cobra.Command{
	Use:   "arbor",
	Short: "Arbor is a declarative incremental form engine",
	Long: `Arbor fills structured records one field at a time. Schemas are declared in
YAML, JSON or Markdown front matter and served over a terminal, HTTP or MCP.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&common.Dir, "dir", "", "Directory of schema documents (Markdown, JSON, YAML)")
	f.StringVarP(&common.File, "file", "f", "", "Single schema definition file (YAML or JSON)")
	f.StringVar(&common.Store, "store", cli.StoreMemory, "Session store: memory, file or redis")
	f.StringVar(&common.SessionsDir, "sessions-dir", "", "Directory for the file store (default .arbor/sessions)")
	f.StringVar(&common.RedisURL, "redis-url", "", "Redis URL for the redis store (e.g. redis://localhost:6379/0)")
	f.DurationVar(&common.SessionTTL, "session-ttl", 0, "Expiration for redis sessions (0 keeps them)")
	f.BoolVar(&common.AllowPlaintext, "allow-plaintext", false, "Accept unencrypted sessions when "+cli.EnvEncryptionKey+" is set")
	f.IntVar(&common.MaxInputSize, "max-input", 0, "Maximum size of a submitted value in bytes")
	f.BoolVar(&common.Debug, "debug", false, "Enable debug logging to stderr")
}
