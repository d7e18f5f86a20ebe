// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parse

import (
	"path"
	"regexp"
	"strings"

	"github.com/pdiddy/strategy-dashboard/pkg/types"
)

var (
	taskTitleRe  = regexp.MustCompile(`(?m)^# Task:\s*(.+)$`)
	taskStatusRe = regexp.MustCompile("\\*\\*Status:\\*\\*\\s*`([^`]+)`")
	taskSizeRe   = regexp.MustCompile("\\*\\*Size:\\*\\*\\s*`([^`]+)`")
	taskEpicRe   = regexp.MustCompile(`\*\*Epic:\*\*\s*\[([^\]]+)\]\(([^)]+)\)`)
)

// epicDelimiter separates the tokens of epic and task filename stems.
const epicDelimiter = "-"

// EpicInferrer derives an epic ID from a task's filename stem when the task
// carries no explicit **Epic:** link.
type EpicInferrer func(stem string) string

// ParseTask extracts a Task from the content of strategy/tasks/<stem>.md,
// inferring a missing epic link with InferEpicID.
func ParseTask(content string, src Source) types.Task {
	return ParseTaskWith(content, src, InferEpicID)
}

// ParseTaskWith is ParseTask with a caller-chosen epic inference rule.
// A nil infer uses InferEpicID.
//
// The title falls back to the stem, the status to "Todo" and the size to M.
func ParseTaskWith(content string, src Source, infer EpicInferrer) types.Task {
	size := types.SizeM
	if label, ok := capture(taskSizeRe, content); ok {
		size = types.ParseSize(label)
	}

	return types.Task{
		ID:       src.Stem,
		Title:    captureOr(taskTitleRe, content, src.Stem),
		Status:   captureOr(taskStatusRe, content, types.StatusTodo),
		Size:     size,
		Project:  src.Project,
		EpicID:   ResolveEpicRef(content, src.Stem, infer),
		FilePath: src.Path,
	}
}

// ResolveEpicRef determines which epic a task belongs to. An explicit
// "**Epic:** [text](link)" line wins; the link target's directory and
// extension are dropped and the remaining stem is the epic ID. Otherwise
// infer (InferEpicID when nil) decides from the task's own stem. The result
// is never empty.
func ResolveEpicRef(content, stem string, infer EpicInferrer) string {
	if m := taskEpicRe.FindStringSubmatch(content); m != nil {
		if id := linkStem(strings.TrimSpace(m[2])); id != "" {
			return id
		}
	}

	if infer == nil {
		infer = InferEpicID
	}
	if id := infer(stem); id != "" {
		return id
	}
	return types.UnknownEpic
}

// linkStem returns the file stem of a markdown link target such as
// "../epics/payments-redesign.md".
func linkStem(link string) string {
	base := path.Base(strings.ReplaceAll(link, `\`, "/"))
	if base == "." || base == "/" {
		return ""
	}
	if stem := strings.TrimSuffix(base, path.Ext(base)); stem != "" {
		return stem
	}
	return base
}

// InferEpicID derives an epic ID from a task stem that follows the
// "<epic-slug>-<ordinal>-<task-slug>" convention: the hyphen-separated tokens
// before the first all-digit token, rejoined with hyphens. A stem without a
// numeric token is returned whole. A stem that starts with a numeric token,
// or is empty, yields "unknown".
//
//	payments-redesign-003-add-webhook -> payments-redesign
//	onboarding-flow                   -> onboarding-flow
//	001-setup                         -> unknown
func InferEpicID(stem string) string {
	var lead []string
	for _, token := range strings.Split(stem, epicDelimiter) {
		if isDigits(token) {
			break
		}
		lead = append(lead, token)
	}

	id := strings.Join(lead, epicDelimiter)
	if id == "" {
		return types.UnknownEpic
	}
	return id
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
