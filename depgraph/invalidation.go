package depgraph

import (
	"strings"

	"github.com/LegacyCodeHQ/vfsgraph/vfs"
)

// handleChange drops every cached entry the event could have made stale: the
// changed paths themselves, anything below them, files whose imports resolved into
// them, and files whose specifiers could now resolve differently.
func (m *Manager) handleChange(ev vfs.ChangeEvent) {
	changed := []string{ev.Path}
	if ev.Type == vfs.EventRename && ev.NewPath != "" {
		changed = append(changed, ev.NewPath)
	}

	dropped := 0
	for _, key := range m.cache.Keys() {
		entry, ok := m.cache.Peek(key)
		if !ok {
			continue
		}
		if isStale(key, entry, changed) {
			m.cache.Remove(key)
			dropped++
		}
	}

	if dropped > 0 {
		m.logger.Debug("invalidated dependency cache", "event", ev.Type, "path", ev.Path, "dropped", dropped)
	}
}

func isStale(key string, entry cacheEntry, changed []string) bool {
	for _, p := range changed {
		if key == p || vfs.IsWithin(key, p) {
			return true
		}

		for _, dep := range entry.deps {
			if dep.Resolved && (dep.To == p || vfs.IsWithin(dep.To, p)) {
				return true
			}
		}

		folded := strings.ToLower(p)
		for _, probe := range entry.probes {
			if probe == folded || vfs.IsWithin(probe, folded) {
				return true
			}
		}
	}
	return false
}
