package specifier

import (
	"regexp"
	"strings"
)

const (
	quote         = "['\"`]"
	quotedValue   = "([^'\"`]+)"
	bindingClause = `(?:\{[^}]*\}|\*\s+as\s+\w+|\w+)`
)

var (
	// import x from './x', import { a } from './a', import './side-effect', import type T from './t'
	staticImportPattern = regexp.MustCompile(
		`import\s+(?:type\s+)?(?:` + bindingClause + `(?:\s*,\s*` + bindingClause + `)*\s+from\s+)?` +
			quote + quotedValue + quote)

	// export * from './x', export { a } from './a'
	reExportPattern = regexp.MustCompile(
		`export\s+(?:type\s+)?(?:\*(?:\s+as\s+\w+)?|\{[^}]*\})\s+from\s+` + quote + quotedValue + quote)

	// import('./lazy')
	dynamicImportPattern = regexp.MustCompile(`import\s*\(\s*` + quote + quotedValue + quote + `\s*\)`)

	// require('./x')
	requirePattern = regexp.MustCompile(`require\s*\(\s*` + quote + quotedValue + quote + `\s*\)`)

	linePatterns = []*regexp.Regexp{
		staticImportPattern,
		reExportPattern,
		dynamicImportPattern,
		requirePattern,
	}
)

// RegexParser scans each line independently with regular expressions. It does not
// understand comments, strings or statements spanning several lines.
type RegexParser struct{}

// NewRegexParser returns the default line-oriented parser.
func NewRegexParser() RegexParser {
	return RegexParser{}
}

func (RegexParser) Parse(_ string, source []byte) []Specifier {
	var specs []Specifier

	for i, line := range strings.Split(string(source), "\n") {
		line = strings.TrimSuffix(line, "\r")
		if !strings.Contains(line, "import") && !strings.Contains(line, "require") && !strings.Contains(line, "export") {
			continue
		}

		var lineSpecs []Specifier
		for _, pattern := range linePatterns {
			for _, m := range pattern.FindAllStringSubmatchIndex(line, -1) {
				// m[2] is the start of the captured value; the opening quote precedes it.
				lineSpecs = append(lineSpecs, Specifier{
					Value:     line[m[2]:m[3]],
					Line:      i + 1,
					Column:    m[2],
					Statement: line[m[0]:m[1]],
				})
			}
		}
		sortByPosition(lineSpecs)
		specs = append(specs, lineSpecs...)
	}

	return specs
}
