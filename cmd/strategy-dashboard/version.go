package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of strategy-dashboard",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "strategy-dashboard %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
