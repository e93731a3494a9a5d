package graph

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/LegacyCodeHQ/vfsgraph/depgraph"
)

// Formatter renders an annotated dependency graph.
type Formatter interface {
	Format(g depgraph.FileDependencyGraph, label string) (string, error)
}

// NewFormatter creates a Formatter for the given format.
func NewFormatter(format string) (Formatter, error) {
	switch format {
	case formatDOT:
		return dotFormatter{}, nil
	case formatJSON:
		return jsonFormatter{}, nil
	case formatText:
		return orderFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown format: %s (valid options: %s)", format, strings.Join(supportedFormats, ", "))
	}
}

func sortedNodes(g depgraph.FileDependencyGraph) []string {
	nodes := make([]string, 0, len(g.Meta.Files))
	for p := range g.Meta.Files {
		nodes = append(nodes, p)
	}
	sort.Strings(nodes)
	return nodes
}

func extensionColors(paths []string) map[string]string {
	availableColors := []string{
		"lightblue", "lightyellow", "mistyrose", "lightsalmon",
		"lightpink", "lavender", "peachpuff", "plum", "powderblue", "khaki",
		"palegoldenrod", "thistle",
	}

	unique := make(map[string]bool)
	for _, p := range paths {
		if ext := path.Ext(p); ext != "" {
			unique[ext] = true
		}
	}

	sorted := make([]string, 0, len(unique))
	for ext := range unique {
		sorted = append(sorted, ext)
	}
	sort.Strings(sorted)

	colors := make(map[string]string, len(sorted))
	for i, ext := range sorted {
		colors[ext] = availableColors[i%len(availableColors)]
	}
	return colors
}

// majorityExtension returns the most common extension, preferring the
// alphabetically first one on ties.
func majorityExtension(paths []string) string {
	counts := make(map[string]int)
	for _, p := range paths {
		counts[path.Ext(p)]++
	}

	best, bestCount := "", 0
	for ext, count := range counts {
		if count > bestCount || (count == bestCount && ext < best) {
			best, bestCount = ext, count
		}
	}
	return best
}
