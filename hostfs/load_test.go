package hostfs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LegacyCodeHQ/vfsgraph/hostfs"
	"github.com/LegacyCodeHQ/vfsgraph/vfs"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		full := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
}

func TestLoad(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/main.ts":                 "import './util'",
		"src/util.ts":                 "export {}",
		"src/components/Button.tsx":   "",
		"node_modules/react/index.js": "",
		".git/HEAD":                   "ref: refs/heads/main",
		".env":                        "SECRET=1",
	})
	store := vfs.NewStore()

	loaded, err := hostfs.Load(store, root)

	require.NoError(t, err)
	assert.Equal(t, 3, loaded)
	assert.Equal(t, []string{
		"/src/components/Button.tsx",
		"/src/main.ts",
		"/src/util.ts",
	}, store.FilePaths())
	assert.True(t, store.IsFolder("/src/components"))

	file, ok := store.File("/src/main.ts")
	require.True(t, ok)
	assert.Equal(t, "import './util'", file.Content)
}

func TestLoad_WithExtensions(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"main.ts":   "",
		"README.md": "",
		"logo.png":  "",
	})
	store := vfs.NewStore()

	loaded, err := hostfs.Load(store, root, hostfs.WithExtensions(".ts", ".md"))

	require.NoError(t, err)
	assert.Equal(t, 2, loaded)
	assert.Equal(t, []string{"/README.md", "/main.ts"}, store.FilePaths())
}

func TestLoad_WithSkippedDirs(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"build/out.js": "",
		"gen/api.ts":   "",
	})
	store := vfs.NewStore()

	_, err := hostfs.Load(store, root, hostfs.WithSkippedDirs("gen"))

	require.NoError(t, err)
	assert.Equal(t, []string{"/build/out.js"}, store.FilePaths())
	assert.False(t, store.IsFolder("/gen"))
}

func TestLoad_RootMustBeDirectory(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"file.ts": ""})

	_, err := hostfs.Load(vfs.NewStore(), filepath.Join(root, "file.ts"))
	assert.ErrorIs(t, err, hostfs.ErrNotDirectory)

	_, err = hostfs.Load(vfs.NewStore(), filepath.Join(root, "missing"))
	assert.Error(t, err)
}

func TestStorePath(t *testing.T) {
	root := filepath.Join("projects", "app")

	got, err := hostfs.StorePath(root, root)
	require.NoError(t, err)
	assert.Equal(t, "/", got)

	got, err = hostfs.StorePath(root, filepath.Join(root, "src", "main.ts"))
	require.NoError(t, err)
	assert.Equal(t, "/src/main.ts", got)

	_, err = hostfs.StorePath(root, filepath.Join("projects", "other", "x.ts"))
	assert.Error(t, err)

	assert.Equal(t, filepath.Join(root, "src", "main.ts"), hostfs.HostPath(root, "/src/main.ts"))
}
