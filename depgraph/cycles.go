package depgraph

import "slices"

// FindCircularDependencies returns the import cycles in the current tree. Each cycle
// starts and ends with the same file.
func (m *Manager) FindCircularDependencies() [][]string {
	return FindCycles(m.Graph().Dependencies)
}

// FindCycles runs a depth-first search from every key in sorted order. Whenever an
// edge reaches a file already on the search stack, the stack from that file onwards,
// closed by the file again, is reported.
func FindCycles(dependencies Adjacency) [][]string {
	visited := make(map[string]bool)
	onStack := make(map[string]bool)
	var stack []string
	var cycles [][]string

	var visit func(node string)
	visit = func(node string) {
		if onStack[node] {
			start := slices.Index(stack, node)
			cycle := append(slices.Clone(stack[start:]), node)
			cycles = append(cycles, cycle)
			return
		}
		if visited[node] {
			return
		}

		visited[node] = true
		onStack[node] = true
		stack = append(stack, node)

		for _, dep := range dependencies[node] {
			visit(dep)
		}

		stack = stack[:len(stack)-1]
		onStack[node] = false
	}

	for _, node := range dependencies.Keys() {
		if !visited[node] {
			visit(node)
		}
	}

	return cycles
}
