package graph

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/LegacyCodeHQ/vfsgraph/cmd/project"
)

const (
	formatDOT  = project.FormatDOT
	formatJSON = project.FormatJSON
	formatText = project.FormatText
)

var supportedFormats = []string{formatDOT, formatJSON, formatText}

type graphOptions struct {
	project.Options
	label       string
	generateURL bool
}

// NewCommand returns a new graph command instance.
func NewCommand() *cobra.Command {
	opts := &graphOptions{}

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Print the project's dependency graph",
		Long: `Builds the dependency graph of every file in the project.

Output formats:
  - dot: Graphviz DOT, edges in a cycle drawn red (default)
  - json: nodes, edges, cycles and unresolved imports
  - text: files in build order, dependencies first

Example usage:
  vfsgraph graph
  vfsgraph graph --url
  vfsgraph graph --format=json
  vfsgraph graph --format=text --dir ./web`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGraph(cmd, opts)
		},
	}
	opts.AddFlags(cmd, supportedFormats...)
	cmd.Flags().StringVarP(&opts.label, "label", "l", "", "Graph label")
	cmd.Flags().BoolVarP(&opts.generateURL, "url", "u", false, "Generate GraphvizOnline URL for visualization")

	return cmd
}

func runGraph(cmd *cobra.Command, opts *graphOptions) error {
	p, err := project.Open(cmd, &opts.Options)
	if err != nil {
		return err
	}
	defer p.Close()

	fileGraph, err := p.Manager.FileGraph()
	if err != nil {
		return fmt.Errorf("failed to build dependency graph: %w", err)
	}

	formatter, err := NewFormatter(opts.Format)
	if err != nil {
		return err
	}
	output, err := formatter.Format(fileGraph, opts.label)
	if err != nil {
		return err
	}

	if opts.generateURL && opts.Format == formatDOT {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), graphvizOnlineURL(output))
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), output)
	return err
}

// graphvizOnlineURL creates a URL for GraphvizOnline with the DOT graph embedded.
func graphvizOnlineURL(dotGraph string) string {
	return fmt.Sprintf("https://dreampuf.github.io/GraphvizOnline/?engine=dot#%s", url.PathEscape(dotGraph))
}
