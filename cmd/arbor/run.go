package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/arbor/internal/cli"
)

var runOpts cli.RunOptions

var runCmd = &cobra.Command{
	Use:   "run [schema]",
	Short: "Fill a form interactively",
	Long: `Starts a form session on the terminal. Without --dir or --file the built-in
signup demo is used. Closing the input leaves the session resumable with --session.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := runOpts
		opts.Options = common
		if len(args) > 0 {
			opts.Schema = args[0]
		}
		return cli.Execute(cmd.Context(), opts, cli.StdIO())
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	f := runCmd.Flags()
	f.StringVarP(&runOpts.SessionID, "session", "s", "", "Resume the session with this ID")
	f.BoolVar(&runOpts.Fresh, "fresh", false, "Discard the session named by --session and start over")
	f.BoolVar(&runOpts.Headless, "headless", false, "Run in headless mode (no banner or system messages)")
	f.BoolVar(&runOpts.JSON, "json", false, "Run in JSON mode (NDJSON input/output)")
	f.BoolVarP(&runOpts.Watch, "watch", "w", false, "Reload schemas from --dir when they change")

	rootCmd.RunE = runCmd.RunE
	rootCmd.Args = runCmd.Args
	rootCmd.Flags().AddFlagSet(runCmd.Flags())
}
