package graph

import (
	"fmt"
	"path"
	"strings"

	"github.com/LegacyCodeHQ/vfsgraph/depgraph"
)

type dotFormatter struct{}

// Format writes Graphviz DOT. Test files are light green, files outside the
// majority extension are colored by extension and edges in a cycle are red.
func (dotFormatter) Format(g depgraph.FileDependencyGraph, label string) (string, error) {
	nodes := sortedNodes(g)
	names := buildNodeNames(nodes)
	colors := extensionColors(nodes)
	majority := majorityExtension(nodes)
	multipleExtensions := len(colors) > 1

	var sb strings.Builder
	sb.WriteString("digraph dependencies {\n")
	sb.WriteString("  rankdir=LR;\n")
	sb.WriteString("  node [shape=box];\n")
	if label != "" {
		sb.WriteString(fmt.Sprintf("  label=%q;\n", label))
		sb.WriteString("  labelloc=t;\n")
		sb.WriteString("  labeljust=l;\n")
		sb.WriteString("  fontsize=10;\n")
		sb.WriteString("  fontname=Courier;\n")
	}
	sb.WriteString("\n")

	for _, node := range nodes {
		color := "white"
		switch {
		case g.Meta.Files[node].IsTest:
			color = "lightgreen"
		case multipleExtensions && path.Ext(node) != majority:
			if c, ok := colors[path.Ext(node)]; ok {
				color = c
			}
		}
		sb.WriteString(fmt.Sprintf("  %q [label=%q, style=filled, fillcolor=%s];\n", node, names[node], color))
	}
	if len(nodes) > 0 {
		sb.WriteString("\n")
	}

	for _, from := range nodes {
		for _, to := range g.Graph.Dependencies[from] {
			if g.Meta.Edges[depgraph.FileEdge{From: from, To: to}].InCycle {
				sb.WriteString(fmt.Sprintf("  %q -> %q [color=red];\n", from, to))
				continue
			}
			sb.WriteString(fmt.Sprintf("  %q -> %q;\n", from, to))
		}
	}

	sb.WriteString("}\n")
	return sb.String(), nil
}
