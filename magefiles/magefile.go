// Package main contains Mage build targets for pdf-to-md developer tooling.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"

	"github.com/omriariav/pdf-to-md/internal/config"
)

const (
	binDir  = "bin"
	binName = "pdf-to-md"
	cmdPkg  = "./cmd/pdf-to-md"
)

// Init writes the example config to the default location when none exists.
func Init() error {
	path := config.DefaultPath()
	if _, err := os.Stat(path); err == nil {
		fmt.Printf("Config already exists at %s\n", path)
		return nil
	}
	if err := config.WriteExample(path, false); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}

// Build compiles the CLI binary into bin/, stamping the version from git.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}

	version, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil {
		version = "dev"
	}

	out := filepath.Join(binDir, binName)
	ldflags := "-X main.version=" + version
	if err := sh.RunV("go", "build", "-ldflags", ldflags, "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Vet runs go vet over the module.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Test runs the test suite.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Check runs vet and the test suite.
func Check() {
	mg.Deps(Vet, Test)
}

// Stats prints project metrics: Go production/test LOC and docs word count.
func Stats() error {
	prodLines, err := countGoLines(false)
	if err != nil {
		return err
	}
	testLines, err := countGoLines(true)
	if err != nil {
		return err
	}
	docWords, err := countDocWords()
	if err != nil {
		return err
	}

	fmt.Printf("Lines of code (Go, production): %d\n", prodLines)
	fmt.Printf("Lines of code (Go, tests):      %d\n", testLines)
	fmt.Printf("Words (documentation):           %d\n", docWords)
	return nil
}

// walkSources visits repository files, skipping hidden and underscore
// directories (which the Go toolchain ignores too) and build output.
func walkSources(fn func(path string, info os.FileInfo) error) error {
	return filepath.Walk(".", func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			name := info.Name()
			if path != "." && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || name == binDir) {
				return filepath.SkipDir
			}
			return nil
		}
		return fn(path, info)
	})
}

// countGoLines counts non-blank lines in Go files. If testOnly is true,
// count only _test.go files; otherwise count non-test .go files.
func countGoLines(testOnly bool) (int, error) {
	total := 0
	err := walkSources(func(path string, info os.FileInfo) error {
		if filepath.Ext(path) != ".go" {
			return nil
		}
		if strings.HasSuffix(path, "_test.go") != testOnly {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		for _, line := range strings.Split(string(data), "\n") {
			if strings.TrimSpace(line) != "" {
				total++
			}
		}
		return nil
	})
	return total, err
}

// countDocWords counts words in Markdown and YAML files.
func countDocWords() (int, error) {
	total := 0
	err := walkSources(func(path string, info os.FileInfo) error {
		ext := filepath.Ext(path)
		if ext != ".md" && ext != ".yaml" && ext != ".yml" {
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
