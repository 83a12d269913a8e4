// Command testdoc renders the scenarios documented on test functions to
// markdown. Integration tests describe themselves with "Scenario:" and
// "Expected:" lines; those become the columns of docs/TESTS.md.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
)

func main() {
	var (
		rootDir         string
		outputFile      string
		integrationOnly bool
	)

	flag.StringVar(&rootDir, "root", ".", "root directory to scan for test files")
	flag.StringVar(&outputFile, "out", "docs/TESTS.md", "output markdown file")
	flag.BoolVar(&integrationOnly, "integration", false, "only include integration tests (*_integration_test.go)")
	flag.Parse()

	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		fail("resolve root directory: %v", err)
	}

	packages, err := ParseTestFiles(absRoot, integrationOnly)
	if err != nil {
		fail("parse test files: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(outputFile), 0o755); err != nil {
		fail("create output directory: %v", err)
	}
	f, err := os.Create(outputFile)
	if err != nil {
		fail("create output file: %v", err)
	}
	defer f.Close()

	if err := RenderMarkdown(f, packages); err != nil {
		fail("render markdown: %v", err)
	}

	fmt.Printf("Generated %s with %d packages\n", outputFile, len(packages))
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "testdoc: "+format+"\n", args...)
	os.Exit(1)
}
