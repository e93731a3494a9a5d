package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/LegacyCodeHQ/vfsgraph/cmd/check"
	"github.com/LegacyCodeHQ/vfsgraph/cmd/cycles"
	"github.com/LegacyCodeHQ/vfsgraph/cmd/graph"
	"github.com/LegacyCodeHQ/vfsgraph/cmd/resolve"
	"github.com/LegacyCodeHQ/vfsgraph/cmd/unused"
	"github.com/LegacyCodeHQ/vfsgraph/cmd/watch"
	"github.com/LegacyCodeHQ/vfsgraph/cmd/why"
)

// version is set via build-time ldflags
var version = "dev"

// buildDate is set via build-time ldflags
var buildDate = "unknown"

// commit is set via build-time ldflags
var commit = "unknown"

// NewRootCommand returns the vfsgraph command with every subcommand registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "vfsgraph",
		Short: "Resolve imports and analyze the dependency graph of a web project",
		Long: `vfsgraph loads a JavaScript/TypeScript project into an in-memory file tree,
resolves every relative and absolute import the way a bundler would, and reports
unresolved imports, circular dependencies and files nothing imports.

Settings are read from .vfsgraph.yaml in the project root, then .vfsgraph.env
and VFSGRAPH_* environment variables, then command-line flags.

Use 'vfsgraph --help' to see all available commands, or 'vfsgraph <command> --help'
for detailed information about a specific command.`,
		Version:      version,
		SilenceUsage: true,
		Annotations: map[string]string{
			"buildDate": buildDate,
			"commit":    commit,
		},
	}

	rootCmd.AddCommand(
		check.NewCommand(),
		cycles.NewCommand(),
		graph.NewCommand(),
		resolve.NewCommand(),
		unused.NewCommand(),
		watch.NewCommand(),
		why.NewCommand(),
	)

	rootCmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}
Build date: {{printf "%s" (index .Annotations "buildDate")}}
Commit: {{printf "%s" (index .Annotations "commit")}}
`)

	return rootCmd
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
