package depgraph

import (
	"path"
	"strings"
)

// FileDependencyGraph wraps a dependency graph with file-level metadata.
type FileDependencyGraph struct {
	Graph DependencyGraph
	Meta  FileGraphMetadata
}

// FileGraphMetadata contains metadata keyed by file and edge.
type FileGraphMetadata struct {
	Files  map[string]FileMetadata
	Edges  map[FileEdge]EdgeMetadata
	Cycles []FileCycle
}

// FileMetadata holds metadata for a single file node.
type FileMetadata struct {
	Lines     int
	IsTest    bool
	Extension string
}

// FileEdge identifies a directed edge between two files.
type FileEdge struct {
	From string
	To   string
}

// EdgeMetadata holds metadata for a graph edge.
type EdgeMetadata struct {
	InCycle bool
}

// FileCycle describes a cycle path; the first file is repeated at the end.
type FileCycle struct {
	Path []string
}

// NewFileDependencyGraph annotates g with per-file metadata, cycle membership of
// every edge and the cycles found by FindCycles. contents supplies file text for line
// counts and may be nil.
func NewFileDependencyGraph(g DependencyGraph, contents map[string]string) (FileDependencyGraph, error) {
	inCycle, err := g.CycleEdges()
	if err != nil {
		return FileDependencyGraph{}, err
	}

	nodes := g.Dependencies.Nodes()
	files := make(map[string]FileMetadata, len(nodes))
	edges := make(map[FileEdge]EdgeMetadata)

	for _, node := range nodes {
		md := FileMetadata{
			IsTest:    IsTestFile(node),
			Extension: path.Ext(path.Base(node)),
		}
		if content, ok := contents[node]; ok {
			md.Lines = countLines(content)
		}
		files[node] = md

		for _, dep := range g.Dependencies[node] {
			edge := FileEdge{From: node, To: dep}
			edges[edge] = EdgeMetadata{InCycle: inCycle[edge]}
		}
	}

	var cycles []FileCycle
	for _, cycle := range FindCycles(g.Dependencies) {
		cycles = append(cycles, FileCycle{Path: cycle})
	}

	return FileDependencyGraph{
		Graph: g,
		Meta: FileGraphMetadata{
			Files:  files,
			Edges:  edges,
			Cycles: cycles,
		},
	}, nil
}

// FileGraph returns the current graph annotated with metadata from the tree.
func (m *Manager) FileGraph() (FileDependencyGraph, error) {
	g := m.Graph()

	contents := make(map[string]string, len(g.Dependencies))
	for file := range g.Dependencies {
		if f, ok := m.tree.File(file); ok {
			contents[file] = f.Content
		}
	}

	return NewFileDependencyGraph(g, contents)
}

func countLines(content string) int {
	if content == "" {
		return 0
	}
	return strings.Count(strings.TrimSuffix(content, "\n"), "\n") + 1
}
