package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/arbor/internal/cli"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Compile the schemas and report errors",
	Long:  `Loads every schema from --dir or --file, compiles it and lists the result.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		infos, err := cli.Validate(cmd.Context(), common, cmd.OutOrStdout())
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d schema(s) valid.\n", len(infos))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
