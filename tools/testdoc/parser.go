package main

import (
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// TestFunc represents a parsed test function.
type TestFunc struct {
	Name     string // e.g. "TestActivate_Conflict"
	Summary  string // first line of the doc comment
	Scenario string // text after "Scenario:"
	Expected string // text after "Expected:"
	Line     int
	IsTable  bool // table-driven (range loop calling t.Run)
}

// TestFile represents a parsed test file.
type TestFile struct {
	Name  string
	Path  string
	Tests []TestFunc
}

// TestPackage represents a collection of test files in a package.
type TestPackage struct {
	Name       string // directory relative to root
	Files      []TestFile
	TotalTests int
}

// ParseTestFiles walks root and parses all *_test.go files. Directories
// starting with "." or "_" and vendor are skipped, as the go tool does.
func ParseTestFiles(root string, integrationOnly bool) ([]TestPackage, error) {
	packageMap := make(map[string]*TestPackage)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if path != root && (name == "vendor" || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(name, "_test.go") {
			return nil
		}
		if integrationOnly && !strings.HasSuffix(name, "_integration_test.go") {
			return nil
		}

		testFile, err := parseTestFile(path)
		if err != nil {
			return err
		}
		if len(testFile.Tests) == 0 {
			return nil
		}

		pkgPath, err := filepath.Rel(root, filepath.Dir(path))
		if err != nil || pkgPath == "." {
			pkgPath = filepath.Base(root)
		}
		pkg, ok := packageMap[pkgPath]
		if !ok {
			pkg = &TestPackage{Name: filepath.ToSlash(pkgPath)}
			packageMap[pkgPath] = pkg
		}
		pkg.Files = append(pkg.Files, *testFile)
		pkg.TotalTests += len(testFile.Tests)
		return nil
	})
	if err != nil {
		return nil, err
	}

	packages := make([]TestPackage, 0, len(packageMap))
	for _, pkg := range packageMap {
		sort.Slice(pkg.Files, func(i, j int) bool {
			return pkg.Files[i].Name < pkg.Files[j].Name
		})
		packages = append(packages, *pkg)
	}
	sort.Slice(packages, func(i, j int) bool {
		return packages[i].Name < packages[j].Name
	})
	return packages, nil
}

// parseTestFile parses a single test file and extracts test functions.
func parseTestFile(path string) (*TestFile, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, nil, parser.ParseComments)
	if err != nil {
		return nil, err
	}

	testFile := &TestFile{Name: filepath.Base(path), Path: path}
	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || !strings.HasPrefix(fn.Name.Name, "Test") || !isTestFunction(fn) {
			continue
		}
		tf := TestFunc{
			Name:    fn.Name.Name,
			Line:    fset.Position(fn.Pos()).Line,
			IsTable: detectTableDriven(fn),
		}
		if fn.Doc != nil {
			tf.Summary, tf.Scenario, tf.Expected = parseDoc(fn.Doc.Text(), fn.Name.Name)
		}
		testFile.Tests = append(testFile.Tests, tf)
	}
	return testFile, nil
}

// parseDoc splits a test doc comment into its summary line and the
// Scenario/Expected fields. Continuation lines are joined with a space.
func parseDoc(doc, testName string) (summary, scenario, expected string) {
	var current *string
	for _, line := range strings.Split(doc, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "":
			current = nil
		case strings.HasPrefix(line, "Scenario:"):
			scenario = strings.TrimSpace(strings.TrimPrefix(line, "Scenario:"))
			current = &scenario
		case strings.HasPrefix(line, "Expected:"):
			expected = strings.TrimSpace(strings.TrimPrefix(line, "Expected:"))
			current = &expected
		case current != nil:
			*current += " " + line
		case summary == "":
			summary = strings.TrimPrefix(line, testName+" ")
			current = &summary
		}
	}
	return summary, scenario, expected
}

// isTestFunction reports whether fn takes a single *testing.T or *testing.B.
func isTestFunction(fn *ast.FuncDecl) bool {
	if fn.Type.Params == nil || len(fn.Type.Params.List) != 1 {
		return false
	}
	star, ok := fn.Type.Params.List[0].Type.(*ast.StarExpr)
	if !ok {
		return false
	}
	sel, ok := star.X.(*ast.SelectorExpr)
	if !ok {
		return false
	}
	ident, ok := sel.X.(*ast.Ident)
	return ok && ident.Name == "testing" && (sel.Sel.Name == "T" || sel.Sel.Name == "B")
}

// detectTableDriven looks for a range loop whose body calls Run.
func detectTableDriven(fn *ast.FuncDecl) bool {
	if fn.Body == nil {
		return false
	}
	found := false
	ast.Inspect(fn.Body, func(n ast.Node) bool {
		rs, ok := n.(*ast.RangeStmt)
		if !ok || found {
			return !found
		}
		ast.Inspect(rs.Body, func(n ast.Node) bool {
			if call, ok := n.(*ast.CallExpr); ok {
				if sel, ok := call.Fun.(*ast.SelectorExpr); ok && sel.Sel.Name == "Run" {
					found = true
				}
			}
			return !found
		})
		return !found
	})
	return found
}
