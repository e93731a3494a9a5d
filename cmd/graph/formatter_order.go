package graph

import (
	"fmt"
	"strings"

	"github.com/LegacyCodeHQ/vfsgraph/depgraph"
)

type orderFormatter struct{}

// Format lists the files so that every file comes after the files it imports.
func (orderFormatter) Format(g depgraph.FileDependencyGraph, _ string) (string, error) {
	order, err := g.Graph.BuildOrder()
	if err != nil {
		return "", fmt.Errorf("no build order: %w", err)
	}

	var sb strings.Builder
	for _, file := range order {
		sb.WriteString(file)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}
