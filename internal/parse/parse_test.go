// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parse

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/strategy-dashboard/pkg/types"
)

// --- test helpers ---

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func src(stem string) Source {
	return Source{Stem: stem, Project: "acme", Path: "/projects/acme/strategy/" + stem + ".md"}
}

// --- epics ---

const epicDoc = "# Epic: Payments Redesign\n\n" +
	"**Priority:** `P1`\n\n" +
	"## Status\n\n`In Progress`\n\n" +
	"## Tasks\n\n" +
	"- [x] [Add webhook](../tasks/payments-redesign-001-add-webhook.md)\n" +
	"- [ ] [Retry queue](../tasks/payments-redesign-002-retry-queue.md)\n" +
	"- [x] [Ledger](../tasks/payments-redesign-003-ledger.md)\n\n" +
	"## Notes\n\n" +
	"- [ ] [Stray linked item](http://example.com)\n" +
	"- [ ] unlinked item is not counted\n"

func TestParseEpic(t *testing.T) {
	epic := ParseEpic(epicDoc, src("payments-redesign"))

	assert.Equal(t, "payments-redesign", epic.ID)
	assert.Equal(t, "Payments Redesign", epic.Title)
	assert.Equal(t, "In Progress", epic.Status)
	assert.Equal(t, "acme", epic.Project)
	assert.Equal(t, "/projects/acme/strategy/payments-redesign.md", epic.FilePath)
	require.NotNil(t, epic.Priority)
	assert.Equal(t, "P1", *epic.Priority)
	// Linked checklist items count wherever they appear.
	assert.Equal(t, 4, epic.TaskCount)
	assert.Equal(t, 2, epic.CompletedTasks)
}

func TestParseEpic_Defaults(t *testing.T) {
	epic := ParseEpic("Just some notes.\n", src("loose-notes"))

	assert.Equal(t, "loose-notes", epic.Title)
	assert.Equal(t, types.StatusNotStarted, epic.Status)
	assert.Nil(t, epic.Priority)
	assert.Zero(t, epic.TaskCount)
	assert.Zero(t, epic.CompletedTasks)
}

func TestParseEpic_EmptyPriorityIsNotAbsent(t *testing.T) {
	epic := ParseEpic("**Priority:** `  `\n", src("e"))
	require.NotNil(t, epic.Priority)
	assert.Equal(t, "", *epic.Priority)
}

func TestParseEpic_StatusVerbatim(t *testing.T) {
	epic := ParseEpic("## Status\n`Blocked on legal`\n", src("e"))
	assert.Equal(t, "Blocked on legal", epic.Status)
}

func TestParseEpic_CompletedNeverExceedsCount(t *testing.T) {
	docs := []string{
		"",
		epicDoc,
		"- [x] [a](a.md)\n- [x] [b](b.md)\n",
		"- [X] [upper](a.md)\n- [ ] [b](b.md)\n",
		"- [x] no link\n- [x] [](empty.md)\n",
	}
	for _, doc := range docs {
		epic := ParseEpic(doc, src("e"))
		assert.GreaterOrEqual(t, epic.CompletedTasks, 0)
		assert.LessOrEqual(t, epic.CompletedTasks, epic.TaskCount)
	}
}

// --- tasks ---

func TestParseTask(t *testing.T) {
	doc := "# Task: Add webhook endpoint\n\n" +
		"**Status:** `In Progress`\n" +
		"**Size:** `L`\n" +
		"**Epic:** [Payments](../epics/payments-v2.md)\n"

	task := ParseTask(doc, src("payments-redesign-003-add-webhook"))

	assert.Equal(t, "payments-redesign-003-add-webhook", task.ID)
	assert.Equal(t, "Add webhook endpoint", task.Title)
	assert.Equal(t, "In Progress", task.Status)
	assert.Equal(t, types.SizeL, task.Size)
	assert.Equal(t, "acme", task.Project)
	assert.Equal(t, "payments-v2", task.EpicID)
}

func TestParseTask_Defaults(t *testing.T) {
	task := ParseTask("nothing structured here", src("payments-redesign-003-add-webhook"))

	assert.Equal(t, "payments-redesign-003-add-webhook", task.Title)
	assert.Equal(t, types.StatusTodo, task.Status)
	assert.Equal(t, types.SizeM, task.Size)
	assert.Equal(t, "payments-redesign", task.EpicID)
}

func TestParseTask_Size(t *testing.T) {
	tests := []struct {
		label string
		want  types.Size
	}{
		{"S", types.SizeS},
		{"xl", types.SizeXL},
		{" L ", types.SizeL},
		{"Huge", types.SizeM},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			task := ParseTask("**Size:** `"+tt.label+"`", src("t"))
			assert.Equal(t, tt.want, task.Size)
		})
	}
}

func TestResolveEpicRef(t *testing.T) {
	tests := []struct {
		name    string
		content string
		stem    string
		want    string
	}{
		{
			name:    "explicit link wins over filename",
			content: "**Epic:** [Billing](../epics/billing.md)",
			stem:    "payments-redesign-003-add-webhook",
			want:    "billing",
		},
		{
			name:    "link without directory or extension",
			content: "**Epic:** [Billing](billing)",
			stem:    "x-1",
			want:    "billing",
		},
		{
			name:    "link with anchor",
			content: "**Epic:**[Billing](../epics/billing.md#scope)",
			stem:    "x-1",
			want:    "billing",
		},
		{
			name:    "numeric ordinal separates epic slug",
			content: "",
			stem:    "payments-redesign-003-add-webhook",
			want:    "payments-redesign",
		},
		{
			name:    "no numeric token keeps whole stem",
			content: "",
			stem:    "onboarding-flow",
			want:    "onboarding-flow",
		},
		{
			name:    "leading ordinal has no epic slug",
			content: "",
			stem:    "001-setup",
			want:    types.UnknownEpic,
		},
		{
			name:    "empty stem",
			content: "",
			stem:    "",
			want:    types.UnknownEpic,
		},
		{
			name:    "unlinked epic label falls back to filename",
			content: "**Epic:** billing",
			stem:    "auth-2-login",
			want:    "auth",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveEpicRef(tt.content, tt.stem, nil))
		})
	}
}

func TestResolveEpicRef_CustomInferrer(t *testing.T) {
	suffixed := func(stem string) string {
		return filepath.Base(stem) + "-custom"
	}
	assert.Equal(t, "task-custom", ResolveEpicRef("", "task", suffixed))

	empty := func(string) string { return "" }
	assert.Equal(t, types.UnknownEpic, ResolveEpicRef("", "task", empty))
}

func TestInferEpicID(t *testing.T) {
	assert.Equal(t, "payments-redesign", InferEpicID("payments-redesign-003-add-webhook"))
	assert.Equal(t, "onboarding-flow", InferEpicID("onboarding-flow"))
	assert.Equal(t, "v2-api", InferEpicID("v2-api-10-auth"))
	assert.Equal(t, types.UnknownEpic, InferEpicID("42"))
}

// --- vision ---

const visionDoc = `# Acme

## North Star

Every team ships weekly.

## Vision

Planning lives next to the code
and stays current.

- trailing list

## Mission

- Keep files as the source of truth
- [x] Show progress at a glance

## Strategic Bets

1. Markdown over databases
2. Conventions over configuration

## Non-Goals

* Authoring tools

## Success Metrics

- 90% of epics updated weekly
`

func TestParseVision(t *testing.T) {
	v := ParseVision(visionDoc)

	require.NotNil(t, v.NorthStar)
	assert.Equal(t, "Every team ships weekly.", *v.NorthStar)
	require.NotNil(t, v.Vision)
	assert.Equal(t, "Planning lives next to the code and stays current.", *v.Vision)
	assert.Equal(t, []string{"Keep files as the source of truth", "Show progress at a glance"}, v.Mission)
	assert.Equal(t, []string{"Markdown over databases", "Conventions over configuration"}, v.StrategicBets)
	assert.Equal(t, []string{"Authoring tools"}, v.NonGoals)
	assert.Equal(t, []string{"90% of epics updated weekly"}, v.SuccessMetrics)
}

func TestParseVision_MissingSections(t *testing.T) {
	v := ParseVision("## North Star\n\nShip it.\n\n## Mission\n\nNo bullets here.\n")

	require.NotNil(t, v.NorthStar)
	assert.Equal(t, "Ship it.", *v.NorthStar)
	assert.Nil(t, v.Vision)
	assert.Nil(t, v.Mission, "section without bullets is absent")
	assert.Nil(t, v.StrategicBets)
	assert.Nil(t, v.NonGoals)
	assert.Nil(t, v.SuccessMetrics, "missing section is absent, not empty")
}

func TestParseVision_HashTextInsideSection(t *testing.T) {
	v := ParseVision("## Strategic Bets\n\n#1 bet is markdown\n1. Files\n")
	assert.Equal(t, []string{"Files"}, v.StrategicBets)
}

func TestParseVision_BulletedBets(t *testing.T) {
	v := ParseVision("## Strategic Bets\n- Files first\n- Zero setup\n")
	assert.Equal(t, []string{"Files first", "Zero setup"}, v.StrategicBets)
}

// --- okrs ---

func TestParseOKRs_Single(t *testing.T) {
	doc := "## Objective 1 — Ship v2\n\n" +
		"**Intent:** Grow retention\n\n" +
		"- **KR1:** Increase D7 retention to 40%\n"

	objs := ParseOKRs(doc)
	require.Len(t, objs, 1)

	obj := objs[0]
	assert.Equal(t, "O1", obj.ID)
	assert.Equal(t, "Ship v2", obj.Title)
	require.NotNil(t, obj.Intent)
	assert.Equal(t, "Grow retention", *obj.Intent)
	assert.Equal(t, []types.KeyResult{{ID: "KR1", Text: "Increase D7 retention to 40%"}}, obj.KeyResults)
}

func TestParseOKRs_Multiple(t *testing.T) {
	doc := `# OKRs 2026

## Objective 1 – Reliable releases

**Intent:** Ship without fear.

### Key Results

- **KR1:** Cut failed deploys
  to under 2% per month
- **KR2:** Mean time to restore below 30 minutes

---

Notes that are not part of KR2.

## Objective 3 - Happier users

- **KR7:** NPS above 50

## Objective 4 — Nothing measured yet
`

	objs := ParseOKRs(doc)
	require.Len(t, objs, 3)

	assert.Equal(t, "O1", objs[0].ID)
	assert.Equal(t, "Reliable releases", objs[0].Title)
	require.NotNil(t, objs[0].Intent)
	assert.Equal(t, "Ship without fear.", *objs[0].Intent)
	assert.Equal(t, []types.KeyResult{
		{ID: "KR1", Text: "Cut failed deploys to under 2% per month"},
		{ID: "KR2", Text: "Mean time to restore below 30 minutes"},
	}, objs[0].KeyResults)

	// IDs follow the header numbers, not the position.
	assert.Equal(t, "O3", objs[1].ID)
	assert.Equal(t, "Happier users", objs[1].Title)
	assert.Nil(t, objs[1].Intent)
	assert.Equal(t, []types.KeyResult{{ID: "KR7", Text: "NPS above 50"}}, objs[1].KeyResults)

	assert.Equal(t, "O4", objs[2].ID)
	assert.Nil(t, objs[2].KeyResults)
}

func TestParseOKRs_None(t *testing.T) {
	assert.Nil(t, ParseOKRs("# OKRs\n\nTBD\n"))
}

// --- file readers ---

func TestReadEpic(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "payments-redesign.md", "# Epic: Payments\r\n\r\n## Status\r\n\r\n`Done`\r\n")

	epic := ReadEpic(path, "acme")
	require.NotNil(t, epic)
	assert.Equal(t, "payments-redesign", epic.ID)
	assert.Equal(t, "Payments", epic.Title)
	assert.Equal(t, types.StatusDone, epic.Status)
	assert.Equal(t, path, epic.FilePath)
}

func TestReadEpic_Failures(t *testing.T) {
	dir := t.TempDir()
	binary := filepath.Join(dir, "binary.md")
	require.NoError(t, os.WriteFile(binary, []byte{0xff, 0xfe, 0x00, 0x41}, 0o644))

	assert.Nil(t, ReadEpic(binary, "acme"), "invalid UTF-8 is skipped")
	assert.Nil(t, ReadEpic(filepath.Join(dir, "missing.md"), "acme"), "missing file is skipped")
	assert.Nil(t, ReadTask(binary, "acme", nil))
	assert.Nil(t, ReadVision(binary))
	assert.Nil(t, ReadOKRs(binary))
}

func TestReadTask(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "auth-002-login.md", "\xef\xbb\xbf# Task: Login form\n")

	task := ReadTask(path, "acme", nil)
	require.NotNil(t, task)
	assert.Equal(t, "Login form", task.Title)
	assert.Equal(t, "auth", task.EpicID)
}

func TestReadTask_CarriageReturnLineEndings(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "auth-003-logout.md", "# Task: Logout\r**Status:** `Done`\r**Size:** `L`\r")

	task := ReadTask(path, "acme", nil)
	require.NotNil(t, task)
	assert.Equal(t, "Logout", task.Title)
	assert.Equal(t, types.StatusDone, task.Status)
	assert.Equal(t, types.SizeL, task.Size)
}

func TestStem(t *testing.T) {
	assert.Equal(t, "payments", Stem("/a/b/payments.md"))
	assert.Equal(t, "archive.tar", Stem("archive.tar.md"))
	assert.Equal(t, ".hidden", Stem(".hidden"))
}
