// Package project loads a directory into a store and a dependency manager for
// the CLI commands.
package project

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/LegacyCodeHQ/vfsgraph/config"
	"github.com/LegacyCodeHQ/vfsgraph/depgraph"
	"github.com/LegacyCodeHQ/vfsgraph/depgraph/specifier"
	"github.com/LegacyCodeHQ/vfsgraph/hostfs"
	"github.com/LegacyCodeHQ/vfsgraph/internal/devlog"
	"github.com/LegacyCodeHQ/vfsgraph/vfs"
)

// Output formats shared by the commands.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// Options are the flags every command accepts.
type Options struct {
	Dir      string
	Parser   string
	LogLevel string
	Format   string
}

// AddFlags registers the shared flags on cmd. formats lists the accepted
// output formats; the first one is the default.
func (o *Options) AddFlags(cmd *cobra.Command, formats ...string) {
	if len(formats) == 0 {
		formats = []string{FormatText, FormatJSON}
	}
	o.Format = formats[0]

	cmd.Flags().StringVarP(&o.Dir, "dir", "d", ".", "Project root directory")
	cmd.Flags().StringVar(&o.Parser, "parser", "", "Import parser (regex, tree-sitter)")
	cmd.Flags().StringVar(&o.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	cmd.Flags().StringVarP(&o.Format, "format", "f", o.Format,
		fmt.Sprintf("Output format (%s)", strings.Join(formats, ", ")))
	cmd.Annotations = map[string]string{"formats": strings.Join(formats, ",")}
}

// CheckFormat rejects formats the command did not register.
func (o *Options) CheckFormat(cmd *cobra.Command) error {
	formats := strings.Split(cmd.Annotations["formats"], ",")
	for _, f := range formats {
		if strings.EqualFold(f, o.Format) {
			o.Format = f
			return nil
		}
	}
	return fmt.Errorf("unknown format: %s (valid options: %s)", o.Format, strings.Join(formats, ", "))
}

// Project is a loaded directory.
type Project struct {
	Root    string
	Config  config.Config
	Store   *vfs.Store
	Manager *depgraph.Manager
	Logger  *slog.Logger
}

// Open reads the configuration of opts.Dir, applies flag overrides and loads
// the directory's files into a fresh store.
func Open(cmd *cobra.Command, opts *Options) (*Project, error) {
	if err := opts.CheckFormat(cmd); err != nil {
		return nil, err
	}

	root, err := filepath.Abs(opts.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project root: %w", err)
	}

	cfg, err := config.Load(root, nil)
	if err != nil {
		return nil, err
	}
	if opts.Parser != "" {
		cfg.Parser = opts.Parser
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}
	logger := devlog.New(cmd.ErrOrStderr(), level)

	store := vfs.NewStore(vfs.WithLogger(logger), vfs.WithExcludedNames(cfg.Excluded...))
	loaded, err := hostfs.Load(store, root,
		hostfs.WithExtensions(cfg.Extensions...),
		hostfs.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	logger.Debug("project loaded", "root", root, "files", loaded)

	manager, err := depgraph.NewManager(store,
		depgraph.WithParser(NewParser(cfg.Parser)),
		depgraph.WithExtensions(cfg.Extensions...),
		depgraph.WithCacheSize(cfg.CacheSize),
		depgraph.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	return &Project{
		Root:    root,
		Config:  cfg,
		Store:   store,
		Manager: manager,
		Logger:  logger,
	}, nil
}

// NewParser returns the parser registered under name.
func NewParser(name string) specifier.Parser {
	if name == config.ParserTreeSitter {
		return specifier.NewTreeSitterParser()
	}
	return specifier.NewRegexParser()
}

// Close detaches the manager from the store.
func (p *Project) Close() {
	p.Manager.Close()
}

// StorePath maps a command-line path to a store path. Absolute paths inside the
// root are made relative to it; anything else is taken as relative to the root.
func (p *Project) StorePath(arg string) (string, error) {
	if filepath.IsAbs(arg) {
		if storePath, err := hostfs.StorePath(p.Root, arg); err == nil {
			return storePath, nil
		}
	}
	storePath, ok := vfs.CleanPath(filepath.ToSlash(arg))
	if !ok {
		return "", fmt.Errorf("invalid path: %s", arg)
	}
	return storePath, nil
}

// FilePath is StorePath for an argument that must name a loaded file.
func (p *Project) FilePath(arg string) (string, error) {
	storePath, err := p.StorePath(arg)
	if err != nil {
		return "", err
	}
	if !p.Store.IsFile(storePath) {
		return "", fmt.Errorf("file not found in project: %s", arg)
	}
	return storePath, nil
}

// EntryPoints returns the configured entry points followed by extra.
func (p *Project) EntryPoints(extra ...string) ([]string, error) {
	entries := append([]string(nil), p.Config.EntryPoints...)
	for _, arg := range extra {
		storePath, err := p.StorePath(arg)
		if err != nil {
			return nil, err
		}
		entries = append(entries, storePath)
	}
	return entries, nil
}

// WriteJSON writes v indented, followed by a newline.
func WriteJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to generate JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
