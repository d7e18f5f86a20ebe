//go:build mage

package main

import (
	"path"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/strategy-dashboard/internal/parse"
	"github.com/pdiddy/strategy-dashboard/pkg/types"
)

func TestSampleFilesParse(t *testing.T) {
	want := map[string]string{
		"dashboard-001-parser": types.StatusDone,
		"dashboard-002-server": types.StatusInProgress,
	}

	for name, content := range sampleFiles {
		if !strings.Contains(name, "/tasks/") {
			continue
		}
		stem := strings.TrimSuffix(path.Base(name), ".md")
		task := parse.ParseTask(content, parse.SourceFor(name, "demo"))
		assert.Equal(t, want[stem], task.Status, stem)
		assert.Equal(t, "dashboard", task.EpicID, stem)
	}

	epic := parse.ParseEpic(sampleFiles["demo/strategy/epics/dashboard.md"], parse.SourceFor("dashboard.md", "demo"))
	assert.Equal(t, types.StatusInProgress, epic.Status)
	assert.Equal(t, 2, epic.TaskCount)
	assert.Equal(t, 1, epic.CompletedTasks)
}
