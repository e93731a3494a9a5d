package graph

import (
	"encoding/json"

	"github.com/LegacyCodeHQ/vfsgraph/depgraph"
)

type jsonFormatter struct{}

type jsonGraphOutput struct {
	Label  string                     `json:"label,omitempty"`
	Nodes  []jsonGraphNode            `json:"nodes"`
	Edges  []jsonGraphEdge            `json:"edges"`
	Cycles []jsonGraphCycle           `json:"cycles"`
	Errors []depgraph.DependencyError `json:"errors"`
}

type jsonGraphNode struct {
	Path       string   `json:"path"`
	Name       string   `json:"name"`
	Lines      int      `json:"lines"`
	Attributes []string `json:"attributes,omitempty"`
}

type jsonGraphEdge struct {
	From    string `json:"from"`
	To      string `json:"to"`
	InCycle bool   `json:"inCycle"`
}

type jsonGraphCycle struct {
	Path []string `json:"path"`
}

// Format converts the graph to JSON with nodes and edges in path order.
func (jsonFormatter) Format(g depgraph.FileDependencyGraph, label string) (string, error) {
	paths := sortedNodes(g)
	names := buildNodeNames(paths)

	nodes := make([]jsonGraphNode, 0, len(paths))
	for _, p := range paths {
		md := g.Meta.Files[p]
		node := jsonGraphNode{Path: p, Name: names[p], Lines: md.Lines}
		if md.IsTest {
			node.Attributes = append(node.Attributes, "test")
		}
		nodes = append(nodes, node)
	}

	edges := []jsonGraphEdge{}
	for _, from := range paths {
		for _, to := range g.Graph.Dependencies[from] {
			edges = append(edges, jsonGraphEdge{
				From:    from,
				To:      to,
				InCycle: g.Meta.Edges[depgraph.FileEdge{From: from, To: to}].InCycle,
			})
		}
	}

	cycles := make([]jsonGraphCycle, 0, len(g.Meta.Cycles))
	for _, cycle := range g.Meta.Cycles {
		cycles = append(cycles, jsonGraphCycle{Path: append([]string(nil), cycle.Path...)})
	}

	errs := g.Graph.Errors
	if errs == nil {
		errs = []depgraph.DependencyError{}
	}

	data, err := json.MarshalIndent(jsonGraphOutput{
		Label:  label,
		Nodes:  nodes,
		Edges:  edges,
		Cycles: cycles,
		Errors: errs,
	}, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}
