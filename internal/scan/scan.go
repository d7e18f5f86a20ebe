// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scan reads the strategy folders of project directories and
// aggregates their projects, epics and tasks.
//
// Each project follows a fixed layout:
//
//	<project>/strategy/VISION.md
//	<project>/strategy/OKRs.md (or OKRS.md)
//	<project>/strategy/epics/*.md
//	<project>/strategy/tasks/*.md
//
// Missing folders and unreadable files shrink the result; they are never
// errors. Scans are synchronous and hold no state between calls.
package scan

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/pdiddy/strategy-dashboard/internal/parse"
	"github.com/pdiddy/strategy-dashboard/pkg/types"
)

const (
	strategyDir = "strategy"
	epicsDir    = "epics"
	tasksDir    = "tasks"
	visionFile  = "VISION.md"
	markdownExt = "*.md"
)

// okrFiles are tried in order; the first that exists is parsed.
var okrFiles = []string{"OKRs.md", "OKRS.md"}

// ProjectResult is the outcome of scanning one project directory.
type ProjectResult struct {
	Project types.Project
	Epics   []types.Epic
	Tasks   []types.Task
}

// Result holds the flattened outcome of scanning several projects.
type Result struct {
	Projects []types.Project
	Epics    []types.Epic
	Tasks    []types.Task
}

// Snapshot wraps the result for serving, stamped with refreshedAt in UTC.
func (r Result) Snapshot(refreshedAt time.Time) types.Snapshot {
	return types.Snapshot{
		Projects:    r.Projects,
		Epics:       r.Epics,
		Tasks:       r.Tasks,
		RefreshedAt: refreshedAt.UTC().Format(time.RFC3339Nano),
	}
}

// Scanner scans project directories. The zero value is ready to use.
type Scanner struct {
	// InferEpic derives a task's epic from its filename when the task has no
	// explicit epic link. Nil uses parse.InferEpicID.
	InferEpic parse.EpicInferrer
}

// ScanProject scans one project directory with the default Scanner.
func ScanProject(dir string) ProjectResult {
	return Scanner{}.ScanProject(dir)
}

// ScanAll scans the named projects under root with the default Scanner.
func ScanAll(root string, names []string) Result {
	return Scanner{}.ScanAll(root, names)
}

// ScanProject reads dir/strategy. A project without a strategy folder is
// returned with only its ID and display name.
func (s Scanner) ScanProject(dir string) ProjectResult {
	name := filepath.Base(dir)
	res := ProjectResult{
		Project: types.Project{ID: name, Name: DisplayName(name)},
	}

	strategy := filepath.Join(dir, strategyDir)
	if !exists(strategy) {
		return res
	}

	if path := filepath.Join(strategy, visionFile); exists(path) {
		res.Project.Vision = parse.ReadVision(path)
	}

	for _, f := range okrFiles {
		if path := filepath.Join(strategy, f); exists(path) {
			res.Project.OKRs = parse.ReadOKRs(path)
			break
		}
	}

	for _, path := range markdownFiles(filepath.Join(strategy, epicsDir)) {
		if epic := parse.ReadEpic(path, name); epic != nil {
			res.Epics = append(res.Epics, *epic)
		}
	}

	for _, path := range markdownFiles(filepath.Join(strategy, tasksDir)) {
		if task := parse.ReadTask(path, name, s.InferEpic); task != nil {
			res.Tasks = append(res.Tasks, *task)
		}
	}

	return res
}

// ScanAll scans root/<name> for every name in order, skipping names whose
// directory does not exist, and concatenates the results. The returned
// slices are never nil.
func (s Scanner) ScanAll(root string, names []string) Result {
	res := Result{
		Projects: []types.Project{},
		Epics:    []types.Epic{},
		Tasks:    []types.Task{},
	}

	for _, name := range names {
		dir := filepath.Join(root, name)
		if !exists(dir) {
			continue
		}
		pr := s.ScanProject(dir)
		res.Projects = append(res.Projects, pr.Project)
		res.Epics = append(res.Epics, pr.Epics...)
		res.Tasks = append(res.Tasks, pr.Tasks...)
	}

	return res
}

// markdownFiles returns the paths of dir/*.md in lexicographic order,
// dotfiles included. A missing or unreadable directory yields no files.
func markdownFiles(dir string) []string {
	if !exists(dir) {
		return nil
	}
	names, err := doublestar.Glob(os.DirFS(dir), markdownExt)
	if err != nil {
		return nil
	}
	sort.Strings(names)

	paths := make([]string, 0, len(names))
	for _, n := range names {
		paths = append(paths, filepath.Join(dir, n))
	}
	return paths
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// DisplayName humanizes a project directory name: hyphens become spaces and
// each word is capitalized with the rest lowercased ("my-APP2go" becomes
// "My App2Go"). A letter is capitalized when it does not follow another
// letter.
func DisplayName(dir string) string {
	var b strings.Builder
	prevLetter := false
	for _, r := range strings.ReplaceAll(dir, "-", " ") {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToTitle(r))
			}
			prevLetter = true
			continue
		}
		b.WriteRune(r)
		prevLetter = false
	}
	return b.String()
}
