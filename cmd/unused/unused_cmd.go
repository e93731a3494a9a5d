package unused

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LegacyCodeHQ/vfsgraph/cmd/project"
)

type unusedOptions struct {
	project.Options
	entryPoints []string
}

// NewCommand returns a new unused command instance.
func NewCommand() *cobra.Command {
	opts := &unusedOptions{}

	cmd := &cobra.Command{
		Use:   "unused",
		Short: "List files that nothing imports",
		Long: `Lists the files no other file imports. Entry points from the config file
and from --entry are never reported.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUnused(cmd, opts)
		},
	}
	opts.AddFlags(cmd)
	cmd.Flags().StringSliceVarP(&opts.entryPoints, "entry", "e", nil, "Entry point files (repeatable)")

	return cmd
}

type unusedOutput struct {
	EntryPoints []string `json:"entryPoints"`
	Unused      []string `json:"unused"`
}

func runUnused(cmd *cobra.Command, opts *unusedOptions) error {
	p, err := project.Open(cmd, &opts.Options)
	if err != nil {
		return err
	}
	defer p.Close()

	entries, err := p.EntryPoints(opts.entryPoints...)
	if err != nil {
		return err
	}
	files := p.Manager.UnusedFiles(entries...)

	out := cmd.OutOrStdout()
	if opts.Format == project.FormatJSON {
		if entries == nil {
			entries = []string{}
		}
		if files == nil {
			files = []string{}
		}
		return project.WriteJSON(out, unusedOutput{EntryPoints: entries, Unused: files})
	}

	if len(files) == 0 {
		_, err := fmt.Fprintln(out, "No unused files found.")
		return err
	}
	for _, file := range files {
		fmt.Fprintln(out, file)
	}
	return nil
}
