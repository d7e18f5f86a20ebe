// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package markdown locates named sections in strategy documents and turns
// their bodies into ordered lists. The functions are pure: they never fail,
// and they report a missing section instead of returning an error.
package markdown

import (
	"regexp"
	"strings"
)

// sectionEndRe matches the start of the next level-1 or level-2 heading.
// Deeper headings (###) belong to the enclosing section, and so do lines
// like "#1 priority" where the marker is not followed by a space.
var sectionEndRe = regexp.MustCompile(`(?m)^(?:#(?:[ \t]|$)|##(?:[^#]|$))`)

// Section returns the body of the first "## <header>" section in content,
// trimmed of surrounding whitespace. header is a regular expression fragment
// matched case-sensitively right after the "##" marker, so "Vision" also
// matches "## Vision Statement". The body runs up to the next "#" or "##"
// heading line or the end of the document.
//
// ok is false when no heading matches or header is not a valid pattern.
func Section(content, header string) (body string, ok bool) {
	re, err := regexp.Compile(`(?m)^##[ \t]*` + header + `[^\n]*(?:\n|$)`)
	if err != nil {
		return "", false
	}

	loc := re.FindStringIndex(content)
	if loc == nil {
		return "", false
	}

	rest := content[loc[1]:]
	if end := sectionEndRe.FindStringIndex(rest); end != nil {
		rest = rest[:end[0]]
	}
	return strings.TrimSpace(rest), true
}

// FirstLine returns the first line of text, trimmed, or "" when text is empty.
func FirstLine(text string) string {
	line, _, _ := strings.Cut(text, "\n")
	return strings.TrimSpace(line)
}

// LeadingParagraph joins the non-empty lines of text that precede the first
// heading or bullet line, separated by single spaces.
func LeadingParagraph(text string) string {
	var parts []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "-") || strings.HasPrefix(trimmed, "*") {
			break
		}
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, " ")
}

// CollapseLines joins the trimmed non-empty lines of text with single spaces.
func CollapseLines(text string) string {
	var parts []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, " ")
}
