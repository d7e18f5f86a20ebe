// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package markdown

import (
	"regexp"
	"strings"
)

// numberedRe matches "1. text" and "1) text" list items.
var numberedRe = regexp.MustCompile(`^\d+[.)]\s*(.+)$`)

// checkboxPrefixes are stripped from bullet items.
var checkboxPrefixes = []string{"[ ] ", "[x] "}

// Bullets returns the text of every "- " or "* " item in body, in line
// order, with any leading checkbox removed. Empty items are dropped.
func Bullets(body string) []string {
	if body == "" {
		return nil
	}

	var items []string
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "- ") && !strings.HasPrefix(line, "* ") {
			continue
		}
		item := strings.TrimSpace(line[2:])
		for _, box := range checkboxPrefixes {
			if strings.HasPrefix(item, box) {
				item = item[len(box):]
				break
			}
		}
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

// Numbered returns the text of every "N." or "N)" item in body, in line order.
func Numbered(body string) []string {
	if body == "" {
		return nil
	}

	var items []string
	for _, line := range strings.Split(body, "\n") {
		m := numberedRe.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		if item := strings.TrimSpace(m[1]); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// NumberedOrBullets prefers the numbered items of body and falls back to
// its bullets when there are none.
func NumberedOrBullets(body string) []string {
	if items := Numbered(body); len(items) > 0 {
		return items
	}
	return Bullets(body)
}
