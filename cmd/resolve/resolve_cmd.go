package resolve

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LegacyCodeHQ/vfsgraph/cmd/project"
	depresolve "github.com/LegacyCodeHQ/vfsgraph/depgraph/resolve"
)

// NewCommand returns a new resolve command instance.
func NewCommand() *cobra.Command {
	opts := &project.Options{}

	cmd := &cobra.Command{
		Use:   "resolve <from> <specifier>",
		Short: "Show which file an import specifier resolves to",
		Long: `Resolves an import specifier as written in <from> and prints the target file.
When nothing matches, the closest existing file is suggested.

Example usage:
  vfsgraph resolve src/main.ts ./utils
  vfsgraph resolve src/main.ts ../config --format json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, opts, args[0], args[1])
		},
	}
	opts.AddFlags(cmd)

	return cmd
}

type resolveOutput struct {
	From       string   `json:"from"`
	Specifier  string   `json:"specifier"`
	External   bool     `json:"external"`
	Resolved   string   `json:"resolved,omitempty"`
	Candidates []string `json:"candidates,omitempty"`
	Suggestion string   `json:"suggestion,omitempty"`
}

func runResolve(cmd *cobra.Command, opts *project.Options, fromArg, specifier string) error {
	p, err := project.Open(cmd, opts)
	if err != nil {
		return err
	}
	defer p.Close()

	from, err := p.FilePath(fromArg)
	if err != nil {
		return err
	}

	result := resolveOutput{
		From:      from,
		Specifier: specifier,
		External:  !depresolve.IsIntraProject(specifier),
	}
	if !result.External {
		if target, ok := p.Manager.Resolve(from, specifier); ok {
			result.Resolved = target
		} else {
			result.Candidates = p.Manager.Resolver().Candidates(depresolve.Base(from, specifier))
			result.Suggestion, _ = p.Manager.Suggest(from, specifier)
		}
	}

	out := cmd.OutOrStdout()
	if opts.Format == project.FormatJSON {
		return project.WriteJSON(out, result)
	}

	switch {
	case result.External:
		fmt.Fprintf(out, "%s is a package import and is not resolved inside the project.\n", specifier)
	case result.Resolved != "":
		fmt.Fprintln(out, result.Resolved)
	default:
		fmt.Fprintf(out, "Cannot resolve module '%s' from %s\n", specifier, from)
		fmt.Fprintln(out, "Tried:")
		for _, candidate := range result.Candidates {
			fmt.Fprintf(out, "  %s\n", candidate)
		}
		if result.Suggestion != "" {
			fmt.Fprintf(out, "Did you mean '%s'?\n", result.Suggestion)
		}
	}
	return nil
}
