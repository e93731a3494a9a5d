package depgraph

import (
	"errors"
	"slices"
	"sort"

	graphlib "github.com/dominikbraun/graph"
)

// Adjacency maps a file to the files it points at.
type Adjacency map[string][]string

// Nodes returns every file named in the adjacency, as a key or a target, sorted.
func (a Adjacency) Nodes() []string {
	seen := make(map[string]bool, len(a))
	for from, targets := range a {
		seen[from] = true
		for _, to := range targets {
			seen[to] = true
		}
	}

	nodes := make([]string, 0, len(seen))
	for node := range seen {
		nodes = append(nodes, node)
	}
	sort.Strings(nodes)
	return nodes
}

// Keys returns the files that have an entry in the adjacency, sorted.
func (a Adjacency) Keys() []string {
	keys := make([]string, 0, len(a))
	for key := range a {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// DependencyGraph is a snapshot of every file's resolved imports.
type DependencyGraph struct {
	// Dependencies has an entry for every file, listing its resolved targets once each.
	Dependencies Adjacency `json:"dependencies"`
	// Dependents is the inverse of Dependencies; files nobody imports have no entry.
	Dependents Adjacency         `json:"dependents"`
	Errors     []DependencyError `json:"errors"`
}

// NewDependencyGraph builds a graph from forward edges, deriving the dependents index.
func NewDependencyGraph(dependencies Adjacency) DependencyGraph {
	g := DependencyGraph{
		Dependencies: make(Adjacency, len(dependencies)),
		Dependents:   make(Adjacency),
	}
	for from, targets := range dependencies {
		g.Dependencies[from] = deduplicatePaths(targets)
	}
	g.Dependents = invert(g.Dependencies)
	return g
}

func invert(dependencies Adjacency) Adjacency {
	dependents := make(Adjacency)
	for _, from := range dependencies.Keys() {
		for _, to := range dependencies[from] {
			dependents[to] = append(dependents[to], from)
		}
	}
	return dependents
}

// Directed converts the forward edges into a dominikbraun/graph directed graph.
func (g DependencyGraph) Directed() (graphlib.Graph[string, string], error) {
	directed := graphlib.New(graphlib.StringHash, graphlib.Directed())

	for _, node := range g.Dependencies.Nodes() {
		if err := directed.AddVertex(node); err != nil && !errors.Is(err, graphlib.ErrVertexAlreadyExists) {
			return nil, err
		}
	}

	for _, from := range g.Dependencies.Keys() {
		for _, to := range g.Dependencies[from] {
			if err := directed.AddEdge(from, to); err != nil && !errors.Is(err, graphlib.ErrEdgeAlreadyExists) {
				return nil, err
			}
		}
	}

	return directed, nil
}

// BuildOrder lists files so that every file comes after the files it imports.
// It fails when the graph has a cycle.
func (g DependencyGraph) BuildOrder() ([]string, error) {
	directed, err := g.Directed()
	if err != nil {
		return nil, err
	}

	order, err := graphlib.StableTopologicalSort(directed, func(a, b string) bool {
		return a < b
	})
	if err != nil {
		return nil, err
	}

	slices.Reverse(order)
	return order, nil
}

// CycleEdges returns the edges that lie on at least one cycle.
func (g DependencyGraph) CycleEdges() (map[FileEdge]bool, error) {
	directed, err := g.Directed()
	if err != nil {
		return nil, err
	}

	components, err := graphlib.StronglyConnectedComponents(directed)
	if err != nil {
		return nil, err
	}

	component := make(map[string]int)
	for i, members := range components {
		if len(members) < 2 {
			continue
		}
		for _, member := range members {
			component[member] = i + 1
		}
	}

	edges := make(map[FileEdge]bool)
	for from, targets := range g.Dependencies {
		for _, to := range targets {
			if from == to || (component[from] != 0 && component[from] == component[to]) {
				edges[FileEdge{From: from, To: to}] = true
			}
		}
	}
	return edges, nil
}

// deduplicatePaths removes duplicate entries while preserving insertion order
func deduplicatePaths(paths []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(paths))
	for _, p := range paths {
		if !seen[p] {
			seen[p] = true
			result = append(result, p)
		}
	}
	return result
}
