package depgraph

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/LegacyCodeHQ/vfsgraph/depgraph/resolve"
)

var (
	fromClausePattern   = regexp.MustCompile("import\\s+.*?from\\s+['\"`]([^'\"`]+)['\"`]")
	namedImportsPattern = regexp.MustCompile("import\\s+(?:type\\s+)?\\{([^}]+)\\}\\s+from\\s+['\"`]([^'\"`]+)['\"`]")
)

// Diagnostics returns the problems found in the file at p: unresolved imports first,
// then textual warnings about duplicate imports, unused named imports and imports of
// the file itself. The textual checks are heuristics over the source, not a parse.
func (m *Manager) Diagnostics(p string) []DependencyError {
	file, ok := m.tree.File(p)
	if !ok {
		return nil
	}

	var diagnostics []DependencyError
	deps := m.Dependencies(file.Path)
	for _, dep := range deps {
		if !dep.Resolved && resolve.IsIntraProject(dep.Specifier) {
			diagnostics = append(diagnostics, m.resolutionError(dep))
		}
	}

	lines := strings.Split(file.Content, "\n")
	for i, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		if d, ok := duplicateImports(file.Path, i+1, line); ok {
			diagnostics = append(diagnostics, d)
		}
		if d, ok := unusedNamedImports(file.Path, i+1, line, file.Content); ok {
			diagnostics = append(diagnostics, d)
		}
	}

	for _, dep := range deps {
		if dep.Resolved && dep.To == file.Path {
			diagnostics = append(diagnostics, DependencyError{
				File:       file.Path,
				Line:       dep.Line,
				Column:     dep.Column,
				Message:    "Cannot import from the same file",
				Severity:   SeverityError,
				ImportPath: dep.Specifier,
			})
		}
	}

	return diagnostics
}

func duplicateImports(file string, lineNumber int, line string) (DependencyError, bool) {
	matches := fromClausePattern.FindAllStringSubmatch(line, -1)
	if len(matches) < 2 {
		return DependencyError{}, false
	}

	seen := make(map[string]bool)
	var duplicates []string
	for _, match := range matches {
		if seen[match[1]] {
			duplicates = append(duplicates, match[1])
		}
		seen[match[1]] = true
	}
	if len(duplicates) == 0 {
		return DependencyError{}, false
	}

	return DependencyError{
		File:       file,
		Line:       lineNumber,
		Column:     1,
		Message:    "Duplicate imports found: " + strings.Join(duplicates, ", "),
		Severity:   SeverityWarning,
		ImportPath: duplicates[0],
	}, true
}

func unusedNamedImports(file string, lineNumber int, line, content string) (DependencyError, bool) {
	loc := namedImportsPattern.FindStringSubmatchIndex(line)
	if loc == nil {
		return DependencyError{}, false
	}
	bindings, importPath := line[loc[2]:loc[3]], line[loc[4]:loc[5]]

	var unused []string
	for _, binding := range strings.Split(bindings, ",") {
		name := localName(binding)
		if name == "" {
			continue
		}
		first := indexWord(content, name, 0)
		if first < 0 || indexWord(content, name, first+1) < 0 {
			unused = append(unused, name)
		}
	}
	if len(unused) == 0 {
		return DependencyError{}, false
	}

	return DependencyError{
		File:       file,
		Line:       lineNumber,
		Column:     loc[2] + indexWord(bindings, unused[0], 0) + 1,
		Message:    fmt.Sprintf("Unused imports: %s", strings.Join(unused, ", ")),
		Severity:   SeverityWarning,
		ImportPath: importPath,
	}, true
}

// localName returns the identifier a named import binds: "b" for "a as b".
func localName(binding string) string {
	fields := strings.Fields(binding)
	if len(fields) > 0 && fields[0] == "type" {
		fields = fields[1:]
	}
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

// indexWord returns the index of the first whole-word occurrence of word in s at or
// after from, or -1. Word characters are ASCII letters, digits and underscores.
func indexWord(s, word string, from int) int {
	for from <= len(s)-len(word) {
		i := strings.Index(s[from:], word)
		if i < 0 {
			return -1
		}
		start, end := from+i, from+i+len(word)
		if (start == 0 || !isWordByte(s[start-1])) && (end == len(s) || !isWordByte(s[end])) {
			return start
		}
		from = start + 1
	}
	return -1
}

func isWordByte(b byte) bool {
	switch {
	case b == '_':
		return true
	case '0' <= b && b <= '9':
		return true
	case 'a' <= b && b <= 'z', 'A' <= b && b <= 'Z':
		return true
	}
	return false
}
