// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parse

import (
	"regexp"

	"github.com/pdiddy/strategy-dashboard/pkg/types"
)

var (
	epicTitleRe    = regexp.MustCompile(`(?m)^# Epic:\s*(.+)$`)
	epicStatusRe   = regexp.MustCompile("(?m)^## Status\\s*\\n+`([^`]+)`")
	epicPriorityRe = regexp.MustCompile("\\*\\*Priority:\\*\\*\\s*`([^`]+)`")

	// epicTaskRe matches a linked checklist item anywhere in the document,
	// not only under "## Tasks".
	epicTaskRe = regexp.MustCompile(`- \[([ x])\] \[([^\]]+)\]\(([^)]+)\)`)
)

// ParseEpic extracts an Epic from the content of strategy/epics/<stem>.md.
//
// The title falls back to the stem and the status to "Not Started".
// Priority stays nil without a **Priority:** label. Every "- [ ] [text](link)"
// line counts toward TaskCount and the "- [x]" form also counts as completed.
func ParseEpic(content string, src Source) types.Epic {
	epic := types.Epic{
		ID:       src.Stem,
		Title:    captureOr(epicTitleRe, content, src.Stem),
		Status:   captureOr(epicStatusRe, content, types.StatusNotStarted),
		Project:  src.Project,
		FilePath: src.Path,
	}

	if priority, ok := capture(epicPriorityRe, content); ok {
		epic.Priority = &priority
	}

	for _, m := range epicTaskRe.FindAllStringSubmatch(content, -1) {
		epic.TaskCount++
		if m[1] == "x" {
			epic.CompletedTasks++
		}
	}

	return epic
}
