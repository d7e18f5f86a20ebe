// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package parse turns strategy markdown files into entities: epics, tasks,
// vision documents and OKR sets. Parsing is best effort. Missing fields get
// documented defaults and malformed content never produces an error. The
// Read* variants load a file first and return nil when it cannot be read or
// is not valid UTF-8 text.
package parse

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/strategy-dashboard/pkg/types"
)

// Source identifies the file an entity was read from.
type Source struct {
	// Stem is the filename without its .md extension; it becomes the entity ID.
	Stem string

	// Project is the directory name of the owning project.
	Project string

	// Path is the source file path as handed to the reader.
	Path string
}

// SourceFor builds the Source for a file under a project.
func SourceFor(path, project string) Source {
	return Source{Stem: Stem(path), Project: project, Path: path}
}

// Stem returns the base name of path without its final extension.
func Stem(path string) string {
	base := filepath.Base(path)
	if stem := strings.TrimSuffix(base, filepath.Ext(base)); stem != "" {
		return stem
	}
	return base
}

var utf8BOM = []byte("\xef\xbb\xbf")

// lineEndings rewrites CRLF and lone CR line endings to LF.
var lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// readText loads path as UTF-8 text with line endings normalized to LF.
// ok is false when the file is missing, unreadable, or not valid UTF-8.
func readText(path string) (text string, ok bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	if !utf8.Valid(data) {
		return "", false
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	return lineEndings.Replace(string(data)), true
}

// ReadEpic parses the epic file at path. It returns nil when the file cannot
// be read or decoded.
func ReadEpic(path, project string) *types.Epic {
	content, ok := readText(path)
	if !ok {
		return nil
	}
	epic := ParseEpic(content, SourceFor(path, project))
	return &epic
}

// ReadTask parses the task file at path, resolving its epic with infer
// (InferEpicID when nil). It returns nil when the file cannot be read or
// decoded.
func ReadTask(path, project string, infer EpicInferrer) *types.Task {
	content, ok := readText(path)
	if !ok {
		return nil
	}
	task := ParseTaskWith(content, SourceFor(path, project), infer)
	return &task
}

// ReadVision parses a VISION.md file. It returns nil when the file cannot be
// read or decoded.
func ReadVision(path string) *types.Vision {
	content, ok := readText(path)
	if !ok {
		return nil
	}
	vision := ParseVision(content)
	return &vision
}

// ReadOKRs parses an OKRs.md file. It returns nil when the file cannot be
// read or decoded, or when it holds no objectives.
func ReadOKRs(path string) []types.Objective {
	content, ok := readText(path)
	if !ok {
		return nil
	}
	return ParseOKRs(content)
}

// capture returns the trimmed first group of the first match of re in
// content.
func capture(re *regexp.Regexp, content string) (string, bool) {
	m := re.FindStringSubmatch(content)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// captureOr is capture with a fallback for a missing match.
func captureOr(re *regexp.Regexp, content, fallback string) string {
	if v, ok := capture(re, content); ok {
		return v
	}
	return fallback
}
