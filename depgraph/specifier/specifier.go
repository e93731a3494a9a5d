// Package specifier extracts raw import specifiers from script source text.
package specifier

import (
	"path"
	"sort"
	"strings"
)

// Specifier is one import reference found in a file.
type Specifier struct {
	// Value is the raw specifier without quotes, e.g. "./utils".
	Value string
	// Line and Column are 1-based; Column points at the opening quote (byte offset).
	Line   int
	Column int
	// Statement is the source text of the matched import expression.
	Statement string
}

// Parser extracts specifiers from a file. Implementations must not fail: text they
// cannot understand yields no specifiers.
type Parser interface {
	Parse(filePath string, source []byte) []Specifier
}

// ParserFunc adapts a function to the Parser interface.
type ParserFunc func(filePath string, source []byte) []Specifier

func (f ParserFunc) Parse(filePath string, source []byte) []Specifier {
	return f(filePath, source)
}

var scriptExtensions = map[string]bool{
	".js":  true,
	".jsx": true,
	".mjs": true,
	".cjs": true,
	".ts":  true,
	".tsx": true,
	".mts": true,
	".cts": true,
}

// IsScriptFile reports whether filePath has a JavaScript or TypeScript extension.
func IsScriptFile(filePath string) bool {
	return scriptExtensions[strings.ToLower(path.Ext(filePath))]
}

func sortByPosition(specs []Specifier) {
	sort.SliceStable(specs, func(i, j int) bool {
		if specs[i].Line != specs[j].Line {
			return specs[i].Line < specs[j].Line
		}
		return specs[i].Column < specs[j].Column
	})
}

// cleanSpecifier removes quotes from import path strings.
func cleanSpecifier(raw string) string {
	return strings.TrimSpace(strings.Trim(raw, "'\"`"))
}
