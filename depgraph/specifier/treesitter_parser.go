package specifier

import (
	"context"
	"path"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// Queries shared by the JavaScript and TypeScript grammars.
var treeSitterQueries = []string{
	// import ... from 'module'
	`(import_statement
  source: (string) @import.source)`,

	// export ... from 'module'
	`(export_statement
  source: (string) @export.source)`,

	// require('module')
	`(call_expression
  function: (identifier) @require.fn
  arguments: (arguments (string) @require.source)
  (#eq? @require.fn "require"))`,

	// import('module')
	`(call_expression
  function: (import)
  arguments: (arguments (string) @dynamic.source))`,
}

// TreeSitterParser extracts specifiers from a syntax tree, so multi-line statements,
// comments and string literals are handled correctly. Files it cannot parse are
// handed to Fallback.
type TreeSitterParser struct {
	Fallback Parser
}

// NewTreeSitterParser returns a tree-sitter parser that falls back to the regex parser.
func NewTreeSitterParser() TreeSitterParser {
	return TreeSitterParser{Fallback: RegexParser{}}
}

func (p TreeSitterParser) Parse(filePath string, source []byte) []Specifier {
	lang := languageForFile(filePath)
	if lang == nil {
		return p.fallback(filePath, source)
	}

	parser := sitter.NewParser()
	parser.SetLanguage(lang)

	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return p.fallback(filePath, source)
	}
	defer tree.Close()

	seen := make(map[[2]int]bool)
	var specs []Specifier
	for _, pattern := range treeSitterQueries {
		for _, spec := range executeQuery(tree.RootNode(), source, lang, pattern) {
			key := [2]int{spec.Line, spec.Column}
			if seen[key] {
				continue
			}
			seen[key] = true
			specs = append(specs, spec)
		}
	}

	sortByPosition(specs)
	return specs
}

func (p TreeSitterParser) fallback(filePath string, source []byte) []Specifier {
	if p.Fallback == nil {
		return nil
	}
	return p.Fallback.Parse(filePath, source)
}

func languageForFile(filePath string) *sitter.Language {
	if !IsScriptFile(filePath) {
		return nil
	}
	switch strings.ToLower(path.Ext(filePath)) {
	case ".ts", ".mts", ".cts":
		return typescript.GetLanguage()
	case ".tsx":
		return tsx.GetLanguage()
	default:
		return javascript.GetLanguage()
	}
}

// executeQuery runs a tree-sitter query and converts its source captures. A query the
// grammar rejects yields nothing.
func executeQuery(root *sitter.Node, source []byte, lang *sitter.Language, pattern string) []Specifier {
	query, err := sitter.NewQuery([]byte(pattern), lang)
	if err != nil {
		return nil
	}
	defer query.Close()

	cursor := sitter.NewQueryCursor()
	defer cursor.Close()
	cursor.Exec(query, root)

	var specs []Specifier
	for {
		match, ok := cursor.NextMatch()
		if !ok {
			break
		}
		match = cursor.FilterPredicates(match, source)

		for _, capture := range match.Captures {
			if !strings.HasSuffix(query.CaptureNameForId(capture.Index), ".source") {
				continue
			}

			value := cleanSpecifier(capture.Node.Content(source))
			if value == "" {
				continue
			}

			start := capture.Node.StartPoint()
			specs = append(specs, Specifier{
				Value:     value,
				Line:      int(start.Row) + 1,
				Column:    int(start.Column) + 1,
				Statement: statementText(capture.Node, source),
			})
		}
	}

	return specs
}

// statementText returns the enclosing import, export or call expression.
func statementText(n *sitter.Node, source []byte) string {
	for parent := n.Parent(); parent != nil; parent = parent.Parent() {
		switch parent.Type() {
		case "import_statement", "export_statement", "call_expression":
			return parent.Content(source)
		}
	}
	return n.Content(source)
}
