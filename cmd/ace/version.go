package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	ace "github.com/acelabs/ace"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of ace",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("ace version %s\n", strings.TrimSpace(ace.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
