package main

import (
	"github.com/spf13/cobra"

	"github.com/acelabs/ace/internal/cli"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start an interactive assistant session",
	Long: `Run starts the interactive loop: type a message, get a reply.
Say goodbye to end the session.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, debug := commonFlags(cmd)
		headless, _ := cmd.Flags().GetBool("headless")
		speech, _ := cmd.Flags().GetBool("speech")
		session, _ := cmd.Flags().GetString("session")

		return cli.RunSession(cli.RunOptions{
			ConfigPath: configPath,
			Debug:      debug,
			Headless:   headless,
			Speech:     speech,
			SessionID:  session,
		})
	},
}

func init() {
	runCmd.Flags().Bool("headless", false, "Suppress the banner and system messages")
	runCmd.Flags().Bool("speech", false, "Speak replies aloud")
	runCmd.Flags().String("session", "", "Session ID to record the transcript under (default: a fresh one)")
	rootCmd.AddCommand(runCmd)
}
