package depgraph

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/LegacyCodeHQ/vfsgraph/depgraph/resolve"
	"github.com/LegacyCodeHQ/vfsgraph/depgraph/specifier"
	"github.com/LegacyCodeHQ/vfsgraph/vfs"
)

// DefaultCacheSize bounds the number of files whose dependencies are memoized.
const DefaultCacheSize = 4096

// Tree is the part of the file tree a Manager reads and watches.
type Tree interface {
	resolve.Tree
	File(p string) (vfs.File, bool)
	Subscribe(listener vfs.Listener) (unsubscribe func())
}

// Manager computes per-file dependencies on demand and keeps them cached until a
// change in the tree could alter them.
type Manager struct {
	tree        Tree
	resolver    *resolve.Resolver
	parser      specifier.Parser
	cache       *lru.Cache[string, cacheEntry]
	logger      *slog.Logger
	unsubscribe func()

	cacheSize  int
	extensions []string
}

type cacheEntry struct {
	stamp uint64
	deps  []Dependency
	// probes holds, lower-cased, every path the file's intra-project specifiers
	// could resolve to. A change at any of them can flip a resolution.
	probes []string
}

// Option configures a Manager.
type Option func(*Manager)

// WithParser replaces the default regex specifier parser.
func WithParser(parser specifier.Parser) Option {
	return func(m *Manager) {
		if parser != nil {
			m.parser = parser
		}
	}
}

// WithExtensions sets the resolver's extension probing order.
func WithExtensions(extensions ...string) Option {
	return func(m *Manager) {
		m.extensions = extensions
	}
}

// WithCacheSize bounds the dependency cache. Non-positive sizes select DefaultCacheSize.
func WithCacheSize(size int) Option {
	return func(m *Manager) {
		m.cacheSize = size
	}
}

// WithLogger sets the logger for cache diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewManager returns a Manager subscribed to tree's change events.
func NewManager(tree Tree, opts ...Option) (*Manager, error) {
	m := &Manager{
		tree:      tree,
		parser:    specifier.NewRegexParser(),
		logger:    slog.Default(),
		cacheSize: DefaultCacheSize,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.cacheSize <= 0 {
		m.cacheSize = DefaultCacheSize
	}

	cache, err := lru.New[string, cacheEntry](m.cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create dependency cache: %w", err)
	}
	m.cache = cache
	m.resolver = resolve.New(tree, m.extensions...)
	m.unsubscribe = tree.Subscribe(m.handleChange)

	return m, nil
}

// Close stops listening to the tree. The Manager must not be used afterwards.
func (m *Manager) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
	m.cache.Purge()
}

// Resolver returns the resolver the Manager uses.
func (m *Manager) Resolver() *resolve.Resolver {
	return m.resolver
}

// Resolve maps specifier, imported from fromPath, to a file in the tree.
func (m *Manager) Resolve(fromPath, specifier string) (string, bool) {
	return m.resolver.Resolve(fromPath, specifier)
}

// Dependencies returns the imports of the file at p in source order. The result is
// empty when p is not a file.
func (m *Manager) Dependencies(p string) []Dependency {
	file, ok := m.tree.File(p)
	if !ok {
		return nil
	}

	if cached, ok := m.cache.Get(file.Path); ok && cached.stamp >= file.Stamp {
		return slices.Clone(cached.deps)
	}

	entry := m.analyze(file)
	m.cache.Add(file.Path, entry)
	return slices.Clone(entry.deps)
}

func (m *Manager) analyze(file vfs.File) cacheEntry {
	specs := m.parser.Parse(file.Path, []byte(file.Content))

	entry := cacheEntry{
		stamp: file.Stamp,
		deps:  make([]Dependency, 0, len(specs)),
	}
	for _, spec := range specs {
		dep := Dependency{
			From:      file.Path,
			To:        spec.Value,
			Specifier: spec.Value,
			Statement: spec.Statement,
			Line:      spec.Line,
			Column:    spec.Column,
		}
		if target, ok := m.resolver.Resolve(file.Path, spec.Value); ok {
			dep.To = target
			dep.Resolved = true
		}
		entry.deps = append(entry.deps, dep)

		if base := resolve.Base(file.Path, spec.Value); base != "" {
			for _, candidate := range m.resolver.Candidates(base) {
				entry.probes = append(entry.probes, strings.ToLower(candidate))
			}
		}
	}

	m.logger.Debug("analyzed dependencies", "path", file.Path, "count", len(entry.deps))
	return entry
}

// Dependents returns the files that import p, sorted.
func (m *Manager) Dependents(p string) []string {
	p, ok := vfs.CleanPath(p)
	if !ok {
		return nil
	}

	var dependents []string
	for _, file := range m.tree.FilePaths() {
		if file == p {
			continue
		}
		for _, dep := range m.Dependencies(file) {
			if dep.Resolved && dep.To == p {
				dependents = append(dependents, file)
				break
			}
		}
	}
	return dependents
}

// Graph folds every file's dependencies into a DependencyGraph. Unresolved
// intra-project imports become errors, with a suggestion when one can be found.
func (m *Manager) Graph() DependencyGraph {
	graph := DependencyGraph{
		Dependencies: make(Adjacency),
		Dependents:   make(Adjacency),
		Errors:       []DependencyError{},
	}

	for _, file := range m.tree.FilePaths() {
		var targets []string
		for _, dep := range m.Dependencies(file) {
			if dep.Resolved {
				targets = append(targets, dep.To)
				continue
			}
			if resolve.IsIntraProject(dep.Specifier) {
				graph.Errors = append(graph.Errors, m.resolutionError(dep))
			}
		}
		graph.Dependencies[file] = deduplicatePaths(targets)
	}

	graph.Dependents = invert(graph.Dependencies)
	return graph
}

func (m *Manager) resolutionError(dep Dependency) DependencyError {
	depErr := DependencyError{
		File:       dep.From,
		Line:       dep.Line,
		Column:     dep.Column,
		Message:    fmt.Sprintf("Cannot resolve module '%s'", dep.Specifier),
		Severity:   SeverityError,
		ImportPath: dep.Specifier,
	}
	if suggestion, ok := m.Suggest(dep.From, dep.Specifier); ok {
		depErr.Suggestion = &suggestion
	}
	return depErr
}

// ClearCache drops every memoized dependency list.
func (m *Manager) ClearCache() {
	m.cache.Purge()
}

// CacheLen reports how many files currently have cached dependencies.
func (m *Manager) CacheLen() int {
	return m.cache.Len()
}
