package cycles

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/LegacyCodeHQ/vfsgraph/cmd/project"
)

// NewCommand returns a new cycles command instance.
func NewCommand() *cobra.Command {
	opts := &project.Options{}

	cmd := &cobra.Command{
		Use:   "cycles",
		Short: "List circular imports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCycles(cmd, opts)
		},
	}
	opts.AddFlags(cmd)

	return cmd
}

type cyclesOutput struct {
	Cycles [][]string `json:"cycles"`
}

func runCycles(cmd *cobra.Command, opts *project.Options) error {
	p, err := project.Open(cmd, opts)
	if err != nil {
		return err
	}
	defer p.Close()

	cycles := p.Manager.FindCircularDependencies()
	if cycles == nil {
		cycles = [][]string{}
	}

	out := cmd.OutOrStdout()
	if opts.Format == project.FormatJSON {
		return project.WriteJSON(out, cyclesOutput{Cycles: cycles})
	}

	if len(cycles) == 0 {
		_, err := fmt.Fprintln(out, "No circular dependencies found.")
		return err
	}
	fmt.Fprintf(out, "Found %d circular dependenc%s:\n", len(cycles), plural(len(cycles)))
	for _, cycle := range cycles {
		fmt.Fprintf(out, "- %s\n", strings.Join(cycle, " -> "))
	}
	return nil
}

func plural(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
