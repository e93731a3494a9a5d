// Package config loads project settings from .vfsgraph.yaml, an optional
// .vfsgraph.env file and VFSGRAPH_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/LegacyCodeHQ/vfsgraph/depgraph"
	"github.com/LegacyCodeHQ/vfsgraph/depgraph/resolve"
	"github.com/LegacyCodeHQ/vfsgraph/vfs"
)

const (
	// FileName is the project configuration file looked up in the project root.
	FileName = ".vfsgraph.yaml"
	// EnvFileName holds VFSGRAPH_* assignments; the process environment wins over it.
	EnvFileName = ".vfsgraph.env"
)

// Parser names accepted by the parser setting.
const (
	ParserRegex      = "regex"
	ParserTreeSitter = "tree-sitter"
)

// Environment variables that override the file settings.
const (
	EnvLogLevel    = "VFSGRAPH_LOG_LEVEL"
	EnvParser      = "VFSGRAPH_PARSER"
	EnvCacheSize   = "VFSGRAPH_CACHE_SIZE"
	EnvExtensions  = "VFSGRAPH_EXTENSIONS"
	EnvEntryPoints = "VFSGRAPH_ENTRY_POINTS"
)

// ErrNotFound is returned by ReadFile when the configuration file does not exist.
var ErrNotFound = errors.New("config file not found")

// Config holds the settings shared by every command.
type Config struct {
	Extensions  []string `yaml:"extensions"`
	Excluded    []string `yaml:"excluded"`
	EntryPoints []string `yaml:"entryPoints"`
	CacheSize   int      `yaml:"cacheSize"`
	Parser      string   `yaml:"parser"`
	LogLevel    string   `yaml:"logLevel"`
}

// LookupFunc reads an environment variable, like os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Extensions: append([]string(nil), resolve.DefaultExtensions...),
		Excluded:   append([]string(nil), vfs.DefaultExcludedNames...),
		CacheSize:  depgraph.DefaultCacheSize,
		Parser:     ParserRegex,
		LogLevel:   "warn",
	}
}

// Parse decodes YAML on top of the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ReadFile parses the configuration file at path.
func ReadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Load reads dir's configuration file, falling back to the defaults when it is
// missing, then applies the env file and the environment seen through lookup.
func Load(dir string, lookup LookupFunc) (Config, error) {
	cfg, err := ReadFile(filepath.Join(dir, FileName))
	if errors.Is(err, ErrNotFound) {
		cfg = Default()
	} else if err != nil {
		return Config{}, err
	}

	fileEnv, err := readEnvFile(filepath.Join(dir, EnvFileName))
	if err != nil {
		return Config{}, err
	}

	if lookup == nil {
		lookup = os.LookupEnv
	}
	env := func(key string) (string, bool) {
		if value, ok := lookup(key); ok {
			return value, true
		}
		value, ok := fileEnv[key]
		return value, ok
	}

	if err := cfg.applyEnv(env); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func readEnvFile(path string) (map[string]string, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	values, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read env file %s: %w", path, err)
	}
	return values, nil
}

func (c *Config) applyEnv(env LookupFunc) error {
	if value, ok := env(EnvLogLevel); ok {
		c.LogLevel = strings.TrimSpace(value)
	}
	if value, ok := env(EnvParser); ok {
		c.Parser = strings.TrimSpace(value)
	}
	if value, ok := env(EnvCacheSize); ok {
		size, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvCacheSize, err)
		}
		c.CacheSize = size
	}
	if value, ok := env(EnvExtensions); ok {
		c.Extensions = splitList(value)
	}
	if value, ok := env(EnvEntryPoints); ok {
		c.EntryPoints = splitList(value)
	}
	return nil
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch c.Parser {
	case ParserRegex, ParserTreeSitter:
	default:
		return fmt.Errorf("unknown parser %q (want %s or %s)", c.Parser, ParserRegex, ParserTreeSitter)
	}

	if c.CacheSize < 0 {
		return fmt.Errorf("cacheSize must not be negative, got %d", c.CacheSize)
	}

	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("extension %q must start with a dot", ext)
		}
	}

	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel parses LogLevel ("debug", "info", "warn", "error").
func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}
