package depgraph_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LegacyCodeHQ/vfsgraph/depgraph"
	"github.com/LegacyCodeHQ/vfsgraph/depgraph/specifier"
	"github.com/LegacyCodeHQ/vfsgraph/vfs"
)

func newManager(t *testing.T, files map[string]string, opts ...depgraph.Option) (*vfs.Store, *depgraph.Manager) {
	t.Helper()

	store := vfs.NewStore()
	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, p := range paths {
		addFile(t, store, p, files[p])
	}

	m, err := depgraph.NewManager(store, opts...)
	require.NoError(t, err)
	t.Cleanup(m.Close)

	return store, m
}

func addFile(t *testing.T, store *vfs.Store, p, content string) {
	t.Helper()

	var chain []string
	for dir := vfs.ParentPath(p); dir != "/"; dir = vfs.ParentPath(dir) {
		chain = append([]string{dir}, chain...)
	}
	for _, dir := range chain {
		store.AddFolder(dir)
	}
	_, ok := store.AddFile(p, content)
	require.True(t, ok, p)
}

func TestManager_ResolvesRelativeImport(t *testing.T) {
	_, m := newManager(t, map[string]string{
		"/src/index.ts": `import x from "./utils"`,
		"/src/utils.ts": "export const x = 1",
	})

	deps := m.Dependencies("/src/index.ts")

	require.Len(t, deps, 1)
	assert.Equal(t, depgraph.Dependency{
		From:      "/src/index.ts",
		To:        "/src/utils.ts",
		Specifier: "./utils",
		Statement: `import x from "./utils"`,
		Line:      1,
		Column:    15,
		Resolved:  true,
	}, deps[0])
}

func TestManager_MissingFileHasNoDependencies(t *testing.T) {
	store, m := newManager(t, map[string]string{"/src/index.ts": ""})
	store.AddFolder("/lib")

	assert.Empty(t, m.Dependencies("/missing.ts"))
	assert.Empty(t, m.Dependencies("/lib"))
}

func TestManager_DeleteInvalidatesDependents(t *testing.T) {
	store, m := newManager(t, map[string]string{
		"/src/index.ts": `import x from "./utils"`,
		"/src/utils.ts": "",
	})
	require.True(t, m.Dependencies("/src/index.ts")[0].Resolved)

	require.True(t, store.DeleteEntry("/src/utils.ts"))

	deps := m.Dependencies("/src/index.ts")
	require.Len(t, deps, 1)
	assert.False(t, deps[0].Resolved)
	assert.Equal(t, "./utils", deps[0].To)

	errs := m.Graph().Errors
	require.Len(t, errs, 1)
	assert.Equal(t, "./utils", errs[0].ImportPath)
	assert.Equal(t, "Cannot resolve module './utils'", errs[0].Message)
	assert.Equal(t, depgraph.SeverityError, errs[0].Severity)
	assert.Nil(t, errs[0].Suggestion)
}

func TestManager_DeleteFolderInvalidatesImportsIntoIt(t *testing.T) {
	store, m := newManager(t, map[string]string{
		"/src/index.ts":            `import { Button } from "./components"`,
		"/src/components/index.ts": "",
	})
	require.True(t, m.Dependencies("/src/index.ts")[0].Resolved)

	require.True(t, store.DeleteEntry("/src/components"))

	assert.False(t, m.Dependencies("/src/index.ts")[0].Resolved)
}

func TestManager_SuggestsSimilarFile(t *testing.T) {
	_, m := newManager(t, map[string]string{
		"/src/index.ts": `import x from "./utils"`,
		"/src/util.ts":  "",
	})

	errs := m.Graph().Errors

	require.Len(t, errs, 1)
	require.NotNil(t, errs[0].Suggestion)
	assert.Equal(t, "./util", *errs[0].Suggestion)

	target, ok := m.Resolve("/src/index.ts", *errs[0].Suggestion)
	require.True(t, ok)
	assert.Equal(t, "/src/util.ts", target)
}

func TestManager_CreateResolvesPreviouslyMissingImport(t *testing.T) {
	store, m := newManager(t, map[string]string{
		"/src/index.ts": `import x from "./utils"`,
	})
	require.False(t, m.Dependencies("/src/index.ts")[0].Resolved)

	addFile(t, store, "/src/utils.ts", "")

	deps := m.Dependencies("/src/index.ts")
	assert.True(t, deps[0].Resolved)
	assert.Equal(t, "/src/utils.ts", deps[0].To)
}

func TestManager_CreateCanChangeResolvedTarget(t *testing.T) {
	store, m := newManager(t, map[string]string{
		"/src/index.ts": `import a from "./a"`,
		"/src/a.js":     "",
	})
	require.Equal(t, "/src/a.js", m.Dependencies("/src/index.ts")[0].To)

	addFile(t, store, "/src/a.ts", "")

	assert.Equal(t, "/src/a.ts", m.Dependencies("/src/index.ts")[0].To)
}

func TestManager_CreateWithDifferentCasingResolves(t *testing.T) {
	store, m := newManager(t, map[string]string{
		"/src/index.ts": `import x from "./Utils"`,
	})
	require.False(t, m.Dependencies("/src/index.ts")[0].Resolved)

	addFile(t, store, "/src/utils.ts", "")

	assert.Equal(t, "/src/utils.ts", m.Dependencies("/src/index.ts")[0].To)
}

func TestManager_RenameInvalidatesBothEnds(t *testing.T) {
	store, m := newManager(t, map[string]string{
		"/src/index.ts":   `import h from "../lib/helpers"`,
		"/lib/helpers.ts": "",
	})
	require.True(t, m.Dependencies("/src/index.ts")[0].Resolved)

	_, ok := store.RenameEntry("/lib", "/shared")
	require.True(t, ok)
	assert.False(t, m.Dependencies("/src/index.ts")[0].Resolved)

	_, ok = store.RenameEntry("/shared", "/lib")
	require.True(t, ok)
	assert.Equal(t, "/lib/helpers.ts", m.Dependencies("/src/index.ts")[0].To)
}

func TestManager_RenameFolderKeepsImportText(t *testing.T) {
	store, m := newManager(t, map[string]string{
		"/src/index.ts": `import x from "./utils"`,
		"/src/utils.ts": "",
	})
	m.Dependencies("/src/index.ts")

	_, ok := store.RenameEntry("/src", "/app")
	require.True(t, ok)

	assert.Empty(t, m.Dependencies("/src/index.ts"))
	deps := m.Dependencies("/app/index.ts")
	require.Len(t, deps, 1)
	assert.Equal(t, "/app/index.ts", deps[0].From)
	assert.Equal(t, "/app/utils.ts", deps[0].To)
	assert.Equal(t, "./utils", deps[0].Specifier)
}

func TestManager_CachesUntilRelevantChange(t *testing.T) {
	calls := map[string]int{}
	counting := specifier.ParserFunc(func(filePath string, source []byte) []specifier.Specifier {
		calls[filePath]++
		return specifier.RegexParser{}.Parse(filePath, source)
	})

	store, m := newManager(t, map[string]string{
		"/src/index.ts": `import x from "./utils"`,
		"/src/utils.ts": "",
		"/other.ts":     "",
	}, depgraph.WithParser(counting))

	m.Dependencies("/src/index.ts")
	m.Dependencies("/src/index.ts")
	assert.Equal(t, 1, calls["/src/index.ts"])

	_, ok := store.UpdateFile("/other.ts", "export {}")
	require.True(t, ok)
	m.Dependencies("/src/index.ts")
	assert.Equal(t, 1, calls["/src/index.ts"])

	_, ok = store.UpdateFile("/src/utils.ts", "export const x = 2")
	require.True(t, ok)
	m.Dependencies("/src/index.ts")
	assert.Equal(t, 2, calls["/src/index.ts"])

	_, ok = store.UpdateFile("/src/index.ts", `import y from "./utils"`)
	require.True(t, ok)
	m.Dependencies("/src/index.ts")
	assert.Equal(t, 3, calls["/src/index.ts"])
}

func TestManager_DependenciesAreCopies(t *testing.T) {
	_, m := newManager(t, map[string]string{
		"/a.ts": `import b from "./b"`,
		"/b.ts": "",
	})

	deps := m.Dependencies("/a.ts")
	deps[0].To = "changed"

	assert.Equal(t, "/b.ts", m.Dependencies("/a.ts")[0].To)
}

func TestManager_Dependents(t *testing.T) {
	_, m := newManager(t, map[string]string{
		"/a.ts": `import c from "./c"`,
		"/b.ts": `const c = require("./c")`,
		"/c.ts": "",
		"/d.ts": `import c from "./c.missing"`,
	})

	assert.Equal(t, []string{"/a.ts", "/b.ts"}, m.Dependents("/c.ts"))
	assert.Empty(t, m.Dependents("/a.ts"))
}

func TestManager_Graph(t *testing.T) {
	_, m := newManager(t, map[string]string{
		"/main.ts": "import a from './a'\nimport again from './a'\nimport React from 'react'\nimport x from './missing'",
		"/a.ts":    "",
	})

	graph := m.Graph()

	assert.Equal(t, depgraph.Adjacency{
		"/a.ts":    {},
		"/main.ts": {"/a.ts"},
	}, graph.Dependencies)
	assert.Equal(t, depgraph.Adjacency{"/a.ts": {"/main.ts"}}, graph.Dependents)
	require.Len(t, graph.Errors, 1)
	assert.Equal(t, "./missing", graph.Errors[0].ImportPath)
	assert.Equal(t, 4, graph.Errors[0].Line)
	assert.Equal(t, 15, graph.Errors[0].Column)
}

func TestManager_FindCircularDependencies(t *testing.T) {
	_, m := newManager(t, map[string]string{
		"/a.ts": `import b from "./b"`,
		"/b.ts": `import a from "./a"`,
	})

	cycles := m.FindCircularDependencies()

	require.NotEmpty(t, cycles)
	assert.Equal(t, []string{"/a.ts", "/b.ts", "/a.ts"}, cycles[0])
	for _, cycle := range cycles {
		assert.Equal(t, cycle[0], cycle[len(cycle)-1])
	}
}

func TestManager_UnusedFiles(t *testing.T) {
	_, m := newManager(t, map[string]string{
		"/main.ts":   `import a from "./a"`,
		"/a.ts":      "",
		"/orphan.ts": "",
	})

	assert.Equal(t, []string{"/orphan.ts"}, m.UnusedFiles("/main.ts"))
	assert.Equal(t, []string{"/main.ts", "/orphan.ts"}, m.UnusedFiles())
}

func TestManager_ClearCache(t *testing.T) {
	_, m := newManager(t, map[string]string{"/a.ts": "", "/b.ts": ""})
	m.Dependencies("/a.ts")
	m.Dependencies("/b.ts")
	require.Equal(t, 2, m.CacheLen())

	m.ClearCache()

	assert.Equal(t, 0, m.CacheLen())
	assert.Empty(t, m.Dependencies("/a.ts"))
}

func TestManager_CacheIsBounded(t *testing.T) {
	_, m := newManager(t, map[string]string{
		"/a.ts": `import b from "./b"`,
		"/b.ts": `import c from "./c"`,
		"/c.ts": "",
	}, depgraph.WithCacheSize(2))

	graph := m.Graph()

	assert.Equal(t, 2, m.CacheLen())
	assert.Equal(t, []string{"/b.ts"}, graph.Dependencies["/a.ts"])
	assert.Equal(t, "/c.ts", m.Dependencies("/b.ts")[0].To)
}

func TestManager_WithExtensions(t *testing.T) {
	_, m := newManager(t, map[string]string{
		"/main.ts": `import a from "./a"`,
		"/a.ts":    "",
	}, depgraph.WithExtensions(".js"))

	assert.False(t, m.Dependencies("/main.ts")[0].Resolved)
	assert.Equal(t, []string{".js"}, m.Resolver().Extensions())
}

func TestManager_WithTreeSitterParser(t *testing.T) {
	_, m := newManager(t, map[string]string{
		"/main.ts": "import {\n  a,\n} from './a'\n// import b from './b'\n",
		"/a.ts":    "",
	}, depgraph.WithParser(specifier.NewTreeSitterParser()))

	deps := m.Dependencies("/main.ts")

	require.Len(t, deps, 1)
	assert.Equal(t, "/a.ts", deps[0].To)
	assert.Equal(t, 3, deps[0].Line)
}

func TestManager_CloseStopsListening(t *testing.T) {
	store, m := newManager(t, map[string]string{"/a.ts": ""})
	m.Dependencies("/a.ts")

	m.Close()
	addFile(t, store, "/b.ts", "")

	assert.Equal(t, 0, m.CacheLen())
}
