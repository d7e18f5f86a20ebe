// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/strategy-dashboard/internal/scan"
	"github.com/pdiddy/strategy-dashboard/pkg/types"
)

// projectNames reads the project list from viper. The list may be a
// comma-separated string (flag, env) or a YAML sequence (config file).
func projectNames() []string {
	if _, ok := viper.Get("projects").([]any); ok {
		return scan.SplitProjects(strings.Join(viper.GetStringSlice("projects"), ","))
	}
	return scan.SplitProjects(viper.GetString("projects"))
}

// resolveScanConfig determines the projects directory and the project names
// to scan, falling back to auto-discovery when no names are configured.
func resolveScanConfig() (types.ScanConfig, error) {
	dir, err := filepath.Abs(viper.GetString("dir"))
	if err != nil {
		return types.ScanConfig{}, fmt.Errorf("resolving projects directory: %w", err)
	}

	cfg := types.ScanConfig{ProjectsDir: dir, Projects: projectNames()}
	if len(cfg.Projects) > 0 {
		return cfg, nil
	}

	found, err := scan.Discover(dir)
	if err != nil {
		return cfg, err
	}
	if len(found) == 0 {
		return cfg, fmt.Errorf("no projects with strategy/ folders found in %s; specify projects with --projects or DASHBOARD_PROJECTS", dir)
	}
	cfg.Projects = found
	cfg.Discovered = true
	return cfg, nil
}

// durationSetting reads a duration from viper. Values with a unit ("5s",
// "1m30s") are parsed as Go durations; a bare number such as
// DASHBOARD_TTL=5 counts seconds.
func durationSetting(key string) (time.Duration, error) {
	raw := strings.TrimSpace(viper.GetString(key))
	if raw == "" {
		return 0, nil
	}
	if secs, err := strconv.ParseFloat(raw, 64); err == nil {
		return time.Duration(secs * float64(time.Second)), nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: use a number of seconds or a duration like 5s", key, raw)
	}
	return d, nil
}

// newLogger returns a text slog logger writing to w, at debug level when
// --verbose is set.
func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if viper.GetBool("verbose") {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
