// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parse

import (
	"regexp"
	"strings"

	"github.com/pdiddy/strategy-dashboard/internal/markdown"
	"github.com/pdiddy/strategy-dashboard/pkg/types"
)

var (
	// objectiveRe matches "## Objective 2 — Title"; the separator may be an
	// em dash, an en dash or a hyphen.
	objectiveRe = regexp.MustCompile(`(?m)^##\s*Objective\s*(\d+)\s*[—–-]\s*(.+?)$`)
	intentRe    = regexp.MustCompile(`\*\*Intent:\*\*\s*(.+?)(?:\n|$)`)
	keyResultRe = regexp.MustCompile(`-\s*\*\*KR(\d+):\*\*\s*`)

	// keyResultEndRe marks where a key result's text stops: the next KR
	// bullet, a heading, or a horizontal rule.
	keyResultEndRe = regexp.MustCompile(`\n-\s*\*\*KR|\n##|\n---`)
)

// ParseOKRs extracts the objectives of an OKRs.md document in document
// order. Each objective spans from its header to the next objective header.
// It returns nil when the document has no objective headers.
func ParseOKRs(content string) []types.Objective {
	matches := objectiveRe.FindAllStringSubmatchIndex(content, -1)
	if len(matches) == 0 {
		return nil
	}

	objectives := make([]types.Objective, 0, len(matches))
	for i, m := range matches {
		end := len(content)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		body := content[m[1]:end]

		obj := types.Objective{
			ID:         "O" + content[m[2]:m[3]],
			Title:      strings.TrimSpace(content[m[4]:m[5]]),
			KeyResults: parseKeyResults(body),
		}
		if intent, ok := capture(intentRe, body); ok {
			obj.Intent = &intent
		}
		objectives = append(objectives, obj)
	}
	return objectives
}

// parseKeyResults reads every "- **KR<n>:** text" bullet in body. The text
// may wrap over several lines and is collapsed onto one.
func parseKeyResults(body string) []types.KeyResult {
	var results []types.KeyResult
	pos := 0
	for pos < len(body) {
		m := keyResultRe.FindStringSubmatchIndex(body[pos:])
		if m == nil {
			break
		}
		id := "KR" + body[pos+m[2]:pos+m[3]]
		start := pos + m[1]

		// The text holds at least one character before a terminator can match.
		end := len(body)
		if start+1 < len(body) {
			if loc := keyResultEndRe.FindStringIndex(body[start+1:]); loc != nil {
				end = start + 1 + loc[0]
			}
		}
		if start > end {
			start = end
		}

		results = append(results, types.KeyResult{
			ID:   id,
			Text: markdown.CollapseLines(body[start:end]),
		})
		pos = end
	}
	return results
}
