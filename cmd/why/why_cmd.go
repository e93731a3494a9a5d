package why

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/LegacyCodeHQ/vfsgraph/cmd/project"
	"github.com/LegacyCodeHQ/vfsgraph/depgraph"
)

// NewCommand returns a new why command instance.
func NewCommand() *cobra.Command {
	opts := &project.Options{}

	cmd := &cobra.Command{
		Use:   "why <from> <to>",
		Short: "Show the import paths connecting two files",
		Long: `Shows every file lying on an import path between <from> and <to>, in
either direction, together with the imports that connect them.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWhy(cmd, opts, args[0], args[1])
		},
	}
	opts.AddFlags(cmd, project.FormatText, project.FormatJSON, project.FormatDOT)

	return cmd
}

type edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type whyOutput struct {
	From  string   `json:"from"`
	To    string   `json:"to"`
	Nodes []string `json:"nodes"`
	Edges []edge   `json:"edges"`
}

func runWhy(cmd *cobra.Command, opts *project.Options, fromArg, toArg string) error {
	p, err := project.Open(cmd, opts)
	if err != nil {
		return err
	}
	defer p.Close()

	fromPath, err := p.FilePath(fromArg)
	if err != nil {
		return fmt.Errorf("failed to resolve from file %q: %w", fromArg, err)
	}
	toPath, err := p.FilePath(toArg)
	if err != nil {
		return fmt.Errorf("failed to resolve to file %q: %w", toArg, err)
	}

	subgraph := depgraph.FindPathNodes(p.Manager.Graph().Dependencies, []string{fromPath, toPath})
	result := whyOutput{From: fromPath, To: toPath, Nodes: subgraph.Keys(), Edges: []edge{}}
	for _, from := range result.Nodes {
		for _, to := range subgraph[from] {
			result.Edges = append(result.Edges, edge{From: from, To: to})
		}
	}

	out := cmd.OutOrStdout()
	switch opts.Format {
	case project.FormatJSON:
		return project.WriteJSON(out, result)
	case project.FormatDOT:
		_, err = fmt.Fprint(out, formatDOT(result))
	default:
		_, err = fmt.Fprint(out, formatText(result))
	}
	return err
}

func formatText(r whyOutput) string {
	if len(r.Edges) == 0 {
		return fmt.Sprintf("No dependency path between %s and %s.\n", r.From, r.To)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Dependency path(s) between %s and %s:\n", r.From, r.To)
	for _, e := range r.Edges {
		fmt.Fprintf(&b, "- %s imports %s\n", e.From, e.To)
	}
	return b.String()
}

func formatDOT(r whyOutput) string {
	var b strings.Builder
	b.WriteString("digraph G {\n")
	b.WriteString("  rankdir=LR;\n")
	for _, node := range r.Nodes {
		shape := "box"
		if node == r.From || node == r.To {
			shape = "doublecircle"
		}
		fmt.Fprintf(&b, "  %q [shape=%s];\n", node, shape)
	}
	for _, e := range r.Edges {
		fmt.Fprintf(&b, "  %q -> %q;\n", e.From, e.To)
	}
	b.WriteString("}\n")
	return b.String()
}
