// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/strategy-dashboard/internal/scan"
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "List project directories that have a strategy/ folder",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := filepath.Abs(viper.GetString("dir"))
		if err != nil {
			return fmt.Errorf("resolving projects directory: %w", err)
		}
		names, err := scan.Discover(dir)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, name := range names {
			fmt.Fprintln(out, name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(discoverCmd)
}
