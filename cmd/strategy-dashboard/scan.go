// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/strategy-dashboard/internal/scan"
	"github.com/pdiddy/strategy-dashboard/pkg/types"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan projects once and print the result",
	Long: `Scan reads the strategy folders of the configured projects and writes the
combined projects, epics and tasks to stdout, in the same shape the dashboard
serves at /api/data.

Use --format table for a per-epic progress summary instead.`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().String("format", "json", "output format: json, yaml or table")

	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	cfg, err := resolveScanConfig()
	if err != nil {
		return err
	}

	snap := scan.ScanAll(cfg.ProjectsDir, cfg.Projects).Snapshot(time.Now())
	return writeSnapshot(cmd.OutOrStdout(), snap, format)
}

// writeSnapshot encodes snap to w as indented JSON or YAML.
func writeSnapshot(w io.Writer, snap types.Snapshot, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(snap); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	case "table":
		writeEpicTable(w, snap)
		return nil
	default:
		return fmt.Errorf("unknown format %q: use json, yaml or table", format)
	}
}

// writeEpicTable prints one row per epic with its checklist progress.
func writeEpicTable(w io.Writer, snap types.Snapshot) {
	if len(snap.Epics) == 0 {
		fmt.Fprintln(w, "No epics found.")
		return
	}

	fmt.Fprintf(w, "%-20s  %-30s  %-12s  %-8s  %-7s  %s\n",
		"Project", "Epic", "Status", "Priority", "Tasks", "Done")
	fmt.Fprintln(w, strings.Repeat("-", 92))

	for _, e := range snap.Epics {
		title := e.Title
		if len(title) > 30 {
			title = title[:27] + "..."
		}
		priority := "-"
		if e.Priority != nil && *e.Priority != "" {
			priority = *e.Priority
		}
		fmt.Fprintf(w, "%-20s  %-30s  %-12s  %-8s  %-7s  %3.0f%%\n",
			e.Project, title, e.Status, priority,
			fmt.Sprintf("%d/%d", e.CompletedTasks, e.TaskCount), 100*e.Progress())
	}

	fmt.Fprintf(w, "\n%d epics, %d tasks\n", len(snap.Epics), len(snap.Tasks))
}
