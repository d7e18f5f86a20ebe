//go:build mage

// Package main contains Mage build targets for strategy-dashboard developer tooling.
package main

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir  = "bin"
	binName = "strategy-dashboard"
	cmdPkg  = "./cmd/strategy-dashboard"
)

// sampleDir holds a demo project for Serve.
const sampleDir = "sample"

// sampleFiles is a minimal strategy folder the dashboard can render.
var sampleFiles = map[string]string{
	"demo/strategy/VISION.md": `# Vision

## North Star
Every team can see where the strategy stands.

## Mission
- Keep strategy next to the code
- Make progress visible
`,
	"demo/strategy/OKRs.md": `# OKRs

## Objective 1 — Ship the dashboard
**Intent:** One page for every project.

- **KR1:** Parse all strategy folders
- **KR2:** Serve them over HTTP
`,
	"demo/strategy/epics/dashboard.md": "# Epic: Dashboard\n\n## Status\n\n`In Progress`\n\n**Priority:** `P1`\n\n" +
		"- [x] [Parser](../tasks/dashboard-001-parser.md)\n- [ ] [Server](../tasks/dashboard-002-server.md)\n",
	"demo/strategy/tasks/dashboard-001-parser.md": "# Task: Parser\n\n**Status:** `Done`\n**Size:** `M`\n",
	"demo/strategy/tasks/dashboard-002-server.md": "# Task: Server\n\n**Status:** `In Progress`\n**Size:** `S`\n",
}

// Init writes a demo project under sample/ for local runs.
func Init() error {
	for name, content := range sampleFiles {
		path := filepath.Join(sampleDir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		fmt.Println("  ", path)
	}
	fmt.Println("Sample project initialized.")
	return nil
}

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	if err := sh.RunV("go", "build", "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs all package tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Lint runs go vet.
func Lint() error {
	return sh.RunV("go", "vet", "./...")
}

// Serve builds the binary and runs the dashboard against the sample project.
func Serve() error {
	mg.Deps(Build, Init)
	return sh.RunV(filepath.Join(binDir, binName), "serve", "--dir", sampleDir, "--watch")
}

// Stats prints project metrics: Go production/test LOC and documentation word count.
func Stats() error {
	prodLines, testLines, err := countGoLines(".")
	if err != nil {
		return err
	}
	docWords, err := countDocWords(".")
	if err != nil {
		return err
	}

	fmt.Printf("Lines of code (Go, production): %d\n", prodLines)
	fmt.Printf("Lines of code (Go, tests):      %d\n", testLines)
	fmt.Printf("Words (markdown):                %d\n", docWords)
	return nil
}

// skipDir reports directories left out of Stats.
func skipDir(d fs.DirEntry) bool {
	name := d.Name()
	return name != "." && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || name == binDir || name == sampleDir)
}

// countGoLines counts non-blank lines in production and test Go files.
func countGoLines(root string) (prod, test int, err error) {
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if skipDir(d) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		n := 0
		for _, line := range bytes.Split(data, []byte("\n")) {
			if len(bytes.TrimSpace(line)) > 0 {
				n++
			}
		}
		if strings.HasSuffix(path, "_test.go") {
			test += n
		} else {
			prod += n
		}
		return nil
	})
	return prod, test, err
}

// countDocWords counts words in markdown files.
func countDocWords(root string) (int, error) {
	total := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if skipDir(d) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".md" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		total += len(strings.Fields(string(data)))
		return nil
	})
	return total, err
}
