package main

import (
	"github.com/spf13/cobra"

	"github.com/acelabs/ace/internal/cli"
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train the intent classifier from the CSV dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, debug := commonFlags(cmd)
		dataset, _ := cmd.Flags().GetString("dataset")

		return cli.RunTrain(cli.TrainOptions{
			ConfigPath: configPath,
			Debug:      debug,
			Dataset:    dataset,
		})
	},
}

func init() {
	trainCmd.Flags().String("dataset", "", "Override the configured dataset path")
	rootCmd.AddCommand(trainCmd)
}
