// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the strategy-dashboard CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the strategy-dashboard CLI.
var rootCmd = &cobra.Command{
	Use:   "strategy-dashboard",
	Short: "Dashboard for markdown strategy folders across projects",
	Long: `strategy-dashboard reads the strategy/ folder of each project directory
(VISION.md, OKRs.md, epics/*.md and tasks/*.md) and presents the combined
picture as JSON and as a web dashboard.

Projects are taken from --projects or DASHBOARD_PROJECTS. When neither is
set, every subdirectory of --dir that contains a strategy/ folder is used.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./strategy-dashboard.yaml or ~/.config/strategy-dashboard/strategy-dashboard.yaml)")
	rootCmd.PersistentFlags().StringP("dir", "d", ".", "directory containing the project directories")
	rootCmd.PersistentFlags().String("projects", "", "comma-separated project directory names (default: auto-discover)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")

	for _, key := range []string{"dir", "projects", "verbose"} {
		viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(key))
	}
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("strategy-dashboard")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "strategy-dashboard"))
		}
	}

	viper.SetEnvPrefix("DASHBOARD")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
