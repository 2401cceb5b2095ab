package main

import (
	"github.com/spf13/cobra"

	"github.com/acelabs/ace/internal/cli"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the configuration, dataset, and app catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := commonFlags(cmd)

		return cli.RunValidate(cli.ValidateOptions{
			ConfigPath: configPath,
		})
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
