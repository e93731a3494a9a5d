package depgraph

// FindPathNodes returns the subgraph of nodes lying on any directed path between a
// pair of target files, in either direction. Targets that are not keys of
// dependencies are skipped.
func FindPathNodes(dependencies Adjacency, targetFiles []string) Adjacency {
	var validTargets []string
	for _, f := range targetFiles {
		if _, ok := dependencies[f]; ok {
			validTargets = append(validTargets, f)
		}
	}

	if len(validTargets) < 2 {
		result := make(Adjacency)
		for _, f := range validTargets {
			result[f] = []string{}
		}
		return result
	}

	forward, reverse := buildAdjacencyLists(dependencies)

	nodesToKeep := make(map[string]bool)
	for _, f := range validTargets {
		nodesToKeep[f] = true
	}

	for i := 0; i < len(validTargets); i++ {
		for j := i + 1; j < len(validTargets); j++ {
			for node := range findDirectedPathNodes(forward, reverse, validTargets[i], validTargets[j]) {
				nodesToKeep[node] = true
			}
			for node := range findDirectedPathNodes(forward, reverse, validTargets[j], validTargets[i]) {
				nodesToKeep[node] = true
			}
		}
	}

	return extractSubgraph(dependencies, nodesToKeep)
}

// buildAdjacencyLists creates forward and reverse adjacency lists from the graph.
// Forward: A→B means forward[A] contains B
// Reverse: A→B means reverse[B] contains A
func buildAdjacencyLists(dependencies Adjacency) (forward, reverse Adjacency) {
	forward = make(Adjacency)
	reverse = make(Adjacency)

	for node := range dependencies {
		forward[node] = []string{}
		reverse[node] = []string{}
	}

	for node, deps := range dependencies {
		for _, dep := range deps {
			forward[node] = append(forward[node], dep)
			reverse[dep] = append(reverse[dep], node)
		}
	}

	return forward, reverse
}

// findDirectedPathNodes finds all nodes reachable from source that can also reach target.
func findDirectedPathNodes(forward, reverse Adjacency, source, target string) map[string]bool {
	result := make(map[string]bool)

	reachableFromSource := bfsReachable(forward, source)
	canReachTarget := bfsReachable(reverse, target)

	for node := range reachableFromSource {
		if canReachTarget[node] {
			result[node] = true
		}
	}

	return result
}

// bfsReachable returns all nodes reachable from source.
func bfsReachable(adjacency Adjacency, source string) map[string]bool {
	reachable := make(map[string]bool)
	reachable[source] = true

	queue := []string{source}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, neighbor := range adjacency[current] {
			if !reachable[neighbor] {
				reachable[neighbor] = true
				queue = append(queue, neighbor)
			}
		}
	}

	return reachable
}

// extractSubgraph keeps only the given nodes and the edges between them.
func extractSubgraph(original Adjacency, nodesToKeep map[string]bool) Adjacency {
	result := make(Adjacency)

	for node := range nodesToKeep {
		deps, ok := original[node]
		if !ok {
			result[node] = []string{}
			continue
		}

		filteredDeps := []string{}
		for _, dep := range deps {
			if nodesToKeep[dep] {
				filteredDeps = append(filteredDeps, dep)
			}
		}
		result[node] = filteredDeps
	}

	return result
}
