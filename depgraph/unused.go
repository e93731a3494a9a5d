package depgraph

import "github.com/LegacyCodeHQ/vfsgraph/vfs"

// UnusedFiles returns the files no other file imports, excluding the entry points.
func (m *Manager) UnusedFiles(entryPoints ...string) []string {
	return UnusedFiles(m.Graph(), entryPoints...)
}

// UnusedFiles returns the keys of graph.Dependencies without dependents that are not
// entry points, sorted.
func UnusedFiles(graph DependencyGraph, entryPoints ...string) []string {
	entries := make(map[string]bool, len(entryPoints))
	for _, entryPoint := range entryPoints {
		if p, ok := vfs.CleanPath(entryPoint); ok {
			entries[p] = true
		}
	}

	var unused []string
	for _, file := range graph.Dependencies.Keys() {
		if len(graph.Dependents[file]) == 0 && !entries[file] {
			unused = append(unused, file)
		}
	}
	return unused
}
