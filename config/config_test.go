package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LegacyCodeHQ/vfsgraph/config"
	"github.com/LegacyCodeHQ/vfsgraph/depgraph"
	"github.com/LegacyCodeHQ/vfsgraph/depgraph/resolve"
)

func noEnv(string) (string, bool) { return "", false }

func envMap(values map[string]string) config.LookupFunc {
	return func(key string) (string, bool) {
		value, ok := values[key]
		return value, ok
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestDefault(t *testing.T) {
	cfg := config.Default()

	assert.Equal(t, resolve.DefaultExtensions, cfg.Extensions)
	assert.Equal(t, depgraph.DefaultCacheSize, cfg.CacheSize)
	assert.Equal(t, config.ParserRegex, cfg.Parser)
	assert.NoError(t, cfg.Validate())
}

func TestParse(t *testing.T) {
	cfg, err := config.Parse([]byte(`
extensions: [".ts", ".vue"]
entryPoints:
  - /src/main.ts
cacheSize: 16
parser: tree-sitter
logLevel: debug
`))

	require.NoError(t, err)
	assert.Equal(t, []string{".ts", ".vue"}, cfg.Extensions)
	assert.Equal(t, []string{"/src/main.ts"}, cfg.EntryPoints)
	assert.Equal(t, 16, cfg.CacheSize)
	assert.Equal(t, config.ParserTreeSitter, cfg.Parser)

	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestParse_KeepsDefaultsForMissingKeys(t *testing.T) {
	cfg, err := config.Parse([]byte("cacheSize: 8\n"))

	require.NoError(t, err)
	assert.Equal(t, 8, cfg.CacheSize)
	assert.Equal(t, resolve.DefaultExtensions, cfg.Extensions)
	assert.Equal(t, config.ParserRegex, cfg.Parser)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"malformed", "extensions: [\n"},
		{"unknown parser", "parser: antlr\n"},
		{"negative cache", "cacheSize: -1\n"},
		{"extension without dot", "extensions: [ts]\n"},
		{"bad log level", "logLevel: loud\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestReadFile_NotFound(t *testing.T) {
	_, err := config.ReadFile(filepath.Join(t.TempDir(), config.FileName))

	assert.ErrorIs(t, err, config.ErrNotFound)
}

func TestLoad_DefaultsWhenNothingConfigured(t *testing.T) {
	cfg, err := config.Load(t.TempDir(), noEnv)

	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad_FileThenEnvFileThenEnvironment(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, config.FileName, "parser: tree-sitter\ncacheSize: 10\nlogLevel: info\n")
	writeFile(t, dir, config.EnvFileName, "VFSGRAPH_CACHE_SIZE=20\nVFSGRAPH_LOG_LEVEL=error\n")

	cfg, err := config.Load(dir, envMap(map[string]string{
		config.EnvLogLevel:   "debug",
		config.EnvExtensions: ".js, .mjs ,",
	}))

	require.NoError(t, err)
	assert.Equal(t, config.ParserTreeSitter, cfg.Parser)
	assert.Equal(t, 20, cfg.CacheSize)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []string{".js", ".mjs"}, cfg.Extensions)
}

func TestLoad_InvalidEnvironment(t *testing.T) {
	_, err := config.Load(t.TempDir(), envMap(map[string]string{config.EnvCacheSize: "lots"}))
	assert.Error(t, err)

	_, err = config.Load(t.TempDir(), envMap(map[string]string{config.EnvParser: "nope"}))
	assert.Error(t, err)
}

func TestLoad_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, config.FileName, "parser: [\n")

	_, err := config.Load(dir, noEnv)

	assert.Error(t, err)
	assert.NotErrorIs(t, err, config.ErrNotFound)
}
