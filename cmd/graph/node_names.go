package graph

import (
	"path"
	"strings"
)

// buildNodeNames returns distinct display names for file paths. Paths sharing a
// base name are disambiguated by increasing path suffix depth.
func buildNodeNames(paths []string) map[string]string {
	names := make(map[string]string, len(paths))
	groupedByBase := make(map[string][]string, len(paths))
	for _, p := range paths {
		base := path.Base(p)
		groupedByBase[base] = append(groupedByBase[base], p)
	}

	for base, groupedPaths := range groupedByBase {
		if len(groupedPaths) == 1 {
			names[groupedPaths[0]] = base
			continue
		}

		for depth := 2; ; depth++ {
			suffixCounts := make(map[string]int, len(groupedPaths))
			for _, p := range groupedPaths {
				suffixCounts[pathSuffix(p, depth)]++
			}

			allDistinct := true
			for _, p := range groupedPaths {
				if suffixCounts[pathSuffix(p, depth)] > 1 {
					allDistinct = false
					break
				}
			}
			if !allDistinct {
				continue
			}

			for _, p := range groupedPaths {
				names[p] = pathSuffix(p, depth)
			}
			break
		}
	}

	return names
}

func pathSuffix(p string, depth int) string {
	parts := strings.Split(strings.TrimPrefix(path.Clean(p), "/"), "/")
	if depth > len(parts) {
		depth = len(parts)
	}
	return strings.Join(parts[len(parts)-depth:], "/")
}
