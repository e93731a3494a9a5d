package depgraph

import (
	"path"
	"sort"
	"strings"

	"github.com/LegacyCodeHQ/vfsgraph/depgraph/resolve"
	"github.com/LegacyCodeHQ/vfsgraph/depgraph/specifier"
)

// Completion is an import specifier offered while the user types one.
type Completion struct {
	Specifier string `json:"specifier"`
	Target    string `json:"target"`
}

// Complete lists the specifiers starting with prefix that reach another file from
// fromPath, shortest first.
func (m *Manager) Complete(fromPath, prefix string) []Completion {
	fromDir := path.Dir(fromPath)
	seen := make(map[string]bool)

	var completions []Completion
	offer := func(form, target string) bool {
		if seen[form] {
			return false
		}
		if resolved, ok := m.resolver.Resolve(fromPath, form); !ok || resolved != target {
			return false
		}
		seen[form] = true
		completions = append(completions, Completion{Specifier: form, Target: target})
		return true
	}

	for _, file := range m.tree.FilePaths() {
		if file == fromPath {
			continue
		}

		rel := resolve.Relative(fromDir, file)
		if !strings.HasPrefix(rel, prefix) {
			continue
		}

		if !specifier.IsScriptFile(file) || !offer(trimExtension(rel), file) {
			offer(rel, file)
		}

		if strings.HasPrefix(path.Base(file), "index.") {
			if folder := resolve.Relative(fromDir, path.Dir(file)); strings.HasPrefix(folder, prefix) {
				offer(folder, file)
			}
		}
	}

	sort.SliceStable(completions, func(i, j int) bool {
		if len(completions[i].Specifier) != len(completions[j].Specifier) {
			return len(completions[i].Specifier) < len(completions[j].Specifier)
		}
		return completions[i].Specifier < completions[j].Specifier
	})
	return completions
}
