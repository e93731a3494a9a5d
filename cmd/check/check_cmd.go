package check

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/LegacyCodeHQ/vfsgraph/cmd/project"
	"github.com/LegacyCodeHQ/vfsgraph/depgraph"
)

// ErrProblemsFound is returned when at least one error-level diagnostic was reported.
var ErrProblemsFound = errors.New("problems found")

// NewCommand returns a new check command instance.
func NewCommand() *cobra.Command {
	opts := &project.Options{}

	cmd := &cobra.Command{
		Use:   "check [files...]",
		Short: "Report unresolved, duplicate, unused and self imports",
		Long: `Loads the project and reports, for every file (or only the given files),
imports that do not resolve, duplicate imports on one line, named imports that
are never used and files that import themselves.

Exits with an error when any error-level problem is found.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, opts, args)
		},
	}
	opts.AddFlags(cmd)

	return cmd
}

func runCheck(cmd *cobra.Command, opts *project.Options, args []string) error {
	p, err := project.Open(cmd, opts)
	if err != nil {
		return err
	}
	defer p.Close()

	files := p.Store.FilePaths()
	if len(args) > 0 {
		files = files[:0:0]
		for _, arg := range args {
			file, err := p.FilePath(arg)
			if err != nil {
				return err
			}
			files = append(files, file)
		}
	}

	report := Collect(p.Manager, files)
	if opts.Format == project.FormatJSON {
		err = project.WriteJSON(cmd.OutOrStdout(), report)
	} else {
		err = report.WriteText(cmd.OutOrStdout())
	}
	if err != nil {
		return err
	}

	if report.Errors > 0 {
		cmd.SilenceUsage = true
		return fmt.Errorf("%d error(s): %w", report.Errors, ErrProblemsFound)
	}
	return nil
}

// Report holds the diagnostics of a set of files.
type Report struct {
	Diagnostics []depgraph.DependencyError `json:"diagnostics"`
	Errors      int                        `json:"errors"`
	Warnings    int                        `json:"warnings"`
}

// Collect runs the diagnostics of every file in order.
func Collect(m *depgraph.Manager, files []string) Report {
	report := Report{Diagnostics: []depgraph.DependencyError{}}
	for _, file := range files {
		for _, d := range m.Diagnostics(file) {
			report.Diagnostics = append(report.Diagnostics, d)
			switch d.Severity {
			case depgraph.SeverityError:
				report.Errors++
			case depgraph.SeverityWarning:
				report.Warnings++
			}
		}
	}
	return report
}

// WriteText prints one line per diagnostic followed by a summary.
func (r Report) WriteText(w io.Writer) error {
	for _, d := range r.Diagnostics {
		line := fmt.Sprintf("%s:%d:%d: %s: %s", d.File, d.Line, d.Column, d.Severity, d.Message)
		if d.Suggestion != nil {
			line += fmt.Sprintf(" (did you mean '%s'?)", *d.Suggestion)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	if len(r.Diagnostics) == 0 {
		_, err := fmt.Fprintln(w, "No problems found.")
		return err
	}
	_, err := fmt.Fprintf(w, "%d error(s), %d warning(s)\n", r.Errors, r.Warnings)
	return err
}
