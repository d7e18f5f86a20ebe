// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scan

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Discover returns the sorted names of root's subdirectories that contain a
// strategy folder. A missing root yields no names and no error.
func Discover(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading projects directory %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("projects directory %s is not a directory", root)
	}

	fsys := os.DirFS(root)
	matches, err := doublestar.Glob(fsys, "*/"+strategyDir)
	if err != nil {
		return nil, fmt.Errorf("globbing %s: %w", root, err)
	}

	var names []string
	for _, m := range matches {
		fi, err := os.Stat(filepath.Join(root, filepath.FromSlash(m)))
		if err != nil || !fi.IsDir() {
			continue
		}
		names = append(names, path.Dir(m))
	}
	sort.Strings(names)
	return names, nil
}

// SplitProjects turns a comma-separated project list into trimmed,
// non-empty names in their given order.
func SplitProjects(list string) []string {
	var names []string
	for _, p := range strings.Split(list, ",") {
		if p = strings.TrimSpace(p); p != "" {
			names = append(names, p)
		}
	}
	return names
}
