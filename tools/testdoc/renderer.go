package main

import (
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"
)

// RenderMarkdown writes the test documentation grouped by command.
func RenderMarkdown(w io.Writer, packages []TestPackage) error {
	fmt.Fprintf(w, "# Test Scenarios\n\n")
	fmt.Fprintf(w, "Generated by `go run ./tools/testdoc`. Do not edit.\n\n")

	byCommand := make(map[string][]TestFunc)
	for _, pkg := range packages {
		for _, file := range pkg.Files {
			for _, test := range file.Tests {
				cmd := extractCommand(test.Name)
				byCommand[cmd] = append(byCommand[cmd], test)
			}
		}
	}

	commands := make([]string, 0, len(byCommand))
	for cmd := range byCommand {
		commands = append(commands, cmd)
	}
	sort.Strings(commands)

	fmt.Fprintf(w, "## Summary\n\n")
	fmt.Fprintf(w, "| Command | Tests |\n")
	fmt.Fprintf(w, "|---------|-------|\n")
	total := 0
	for _, cmd := range commands {
		n := len(byCommand[cmd])
		fmt.Fprintf(w, "| [%s](#%s) | %d |\n", cmd, toAnchor(cmd), n)
		total += n
	}
	fmt.Fprintf(w, "| **Total** | **%d** |\n\n", total)

	for _, cmd := range commands {
		renderCommandSection(w, cmd, byCommand[cmd])
	}
	return nil
}

func renderCommandSection(w io.Writer, cmd string, tests []TestFunc) {
	fmt.Fprintf(w, "## %s\n\n", cmd)
	fmt.Fprintf(w, "| Test | Scenario | Expected |\n")
	fmt.Fprintf(w, "|------|----------|----------|\n")
	for _, test := range tests {
		scenario := test.Scenario
		if scenario == "" {
			scenario = test.Summary
		}
		if scenario == "" {
			scenario = "_No documentation_"
		}
		fmt.Fprintf(w, "| `%s` | %s | %s |\n", test.Name, cell(scenario), cell(test.Expected))
	}
	fmt.Fprintf(w, "\n")
}

// cell escapes text for a markdown table cell.
func cell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}

// commandNames maps test name prefixes to the command they exercise.
var commandNames = map[string]string{
	"Init":       "devcontainer init",
	"Activate":   "devcontainer activate",
	"Deactivate": "devcontainer deactivate",
	"List":       "devcontainer ls",
	"Templates":  "devcontainer templates",
	"ID":         "devcontainer id",
	"Diff":       "devcontainer diff",
	"Start":      "devcontainer start",
	"Stop":       "devcontainer stop",
	"Status":     "devcontainer status",
	"Run":        "devcontainer run",
	"Exec":       "devcontainer exec",
	"Doctor":     "devcontainer doctor",
	"ConfigInit": "devcontainer config",
	"ConfigShow": "devcontainer config",
}

// extractCommand maps TestActivate_Conflict to "devcontainer activate".
// Unknown prefixes are lowercased.
func extractCommand(testName string) string {
	name := strings.TrimPrefix(testName, "Test")
	prefix, _, _ := strings.Cut(name, "_")
	if mapped, ok := commandNames[prefix]; ok {
		return mapped
	}
	return strings.ToLower(prefix)
}

var anchorStrip = regexp.MustCompile(`[^a-zA-Z0-9-]`)

// toAnchor converts a heading to its GitHub markdown anchor.
func toAnchor(heading string) string {
	return strings.ToLower(anchorStrip.ReplaceAllString(strings.ReplaceAll(heading, " ", "-"), ""))
}
