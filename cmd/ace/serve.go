package main

import (
	"github.com/spf13/cobra"

	"github.com/acelabs/ace/internal/cli"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Expose the assistant over HTTP",
	Long: `Serve starts a JSON API with classify, respond, intent listing, and
session transcript endpoints, plus Prometheus metrics on /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, debug := commonFlags(cmd)
		addr, _ := cmd.Flags().GetString("addr")

		return cli.RunServe(cli.ServeOptions{
			ConfigPath: configPath,
			Debug:      debug,
			Addr:       addr,
		})
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
