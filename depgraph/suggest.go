package depgraph

import (
	"path"
	"sort"
	"strings"

	"github.com/LegacyCodeHQ/vfsgraph/depgraph/resolve"
)

// Suggest proposes a specifier for an import of specifier from fromPath that does not
// resolve. Files whose name stem contains, or is contained in, the specifier's stem are
// ranked by relative distance; the first one a specifier can reach is returned.
func (m *Manager) Suggest(fromPath, specifier string) (string, bool) {
	wanted := strings.ToLower(stem(specifier))
	if wanted == "" {
		return "", false
	}

	fromDir := path.Dir(fromPath)

	type candidate struct {
		file string
		rel  string
	}
	var candidates []candidate
	for _, file := range m.tree.FilePaths() {
		if file == fromPath {
			continue
		}
		have := strings.ToLower(stem(file))
		if have == "" || (!strings.Contains(have, wanted) && !strings.Contains(wanted, have)) {
			continue
		}
		candidates = append(candidates, candidate{file: file, rel: resolve.Relative(fromDir, file)})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if len(candidates[i].rel) != len(candidates[j].rel) {
			return len(candidates[i].rel) < len(candidates[j].rel)
		}
		return candidates[i].file < candidates[j].file
	})

	for _, c := range candidates {
		for _, form := range specifierForms(fromDir, c.file, c.rel) {
			if target, ok := m.resolver.Resolve(fromPath, form); ok && target == c.file {
				return form, true
			}
		}
	}
	return "", false
}

// specifierForms lists the ways file can be imported from fromDir, shortest first:
// without extension, as is, and through its folder when it is an index file.
func specifierForms(fromDir, file, rel string) []string {
	var forms []string
	if trimmed := trimExtension(rel); trimmed != rel {
		forms = append(forms, trimmed)
	}
	forms = append(forms, rel)
	if strings.HasPrefix(path.Base(file), "index.") {
		forms = append(forms, resolve.Relative(fromDir, path.Dir(file)))
	}
	return forms
}

// stem returns the last path element up to its first dot.
func stem(p string) string {
	name := path.Base(p)
	if i := strings.Index(name, "."); i >= 0 {
		name = name[:i]
	}
	if name == "/" {
		return ""
	}
	return name
}

func trimExtension(rel string) string {
	dot := strings.LastIndex(rel, ".")
	if dot <= strings.LastIndex(rel, "/") {
		return rel
	}
	return rel[:dot]
}
