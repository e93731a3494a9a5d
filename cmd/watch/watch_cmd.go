package watch

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/LegacyCodeHQ/vfsgraph/cmd/check"
	"github.com/LegacyCodeHQ/vfsgraph/cmd/project"
	"github.com/LegacyCodeHQ/vfsgraph/hostfs"
)

type watchOptions struct {
	project.Options
	debounce time.Duration
}

// NewCommand returns a new watch command instance.
func NewCommand() *cobra.Command {
	opts := &watchOptions{debounce: hostfs.DefaultDebounce}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-check the project whenever files change",
		Long: `Loads the project, prints its problems and keeps the in-memory tree in sync
with the directory. Every batch of changes triggers a new report.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, opts)
		},
	}
	opts.AddFlags(cmd)
	cmd.Flags().DurationVar(&opts.debounce, "debounce", opts.debounce, "Quiet period before reporting a batch of changes")

	return cmd
}

type watchReport struct {
	Changed []string `json:"changed"`
	check.Report
}

func runWatch(cmd *cobra.Command, opts *watchOptions) error {
	p, err := project.Open(cmd, &opts.Options)
	if err != nil {
		return err
	}
	defer p.Close()

	out := cmd.OutOrStdout()
	if err := writeReport(out, opts.Format, watchReport{
		Changed: []string{},
		Report:  check.Collect(p.Manager, p.Store.FilePaths()),
	}); err != nil {
		return err
	}

	watcher, err := hostfs.NewWatcher(p.Store, p.Root,
		hostfs.WithExtensions(p.Config.Extensions...),
		hostfs.WithLogger(p.Logger),
		hostfs.WithDebounce(opts.debounce))
	if err != nil {
		return err
	}
	defer watcher.Close()

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s (press Ctrl+C to stop)\n", p.Root)

	return watcher.Run(ctx, func(storePaths []string) {
		report := watchReport{
			Changed: storePaths,
			Report:  check.Collect(p.Manager, p.Store.FilePaths()),
		}
		if err := writeReport(out, opts.Format, report); err != nil {
			p.Logger.Warn("failed to write report", "error", err)
		}
	})
}

func writeReport(w io.Writer, format string, report watchReport) error {
	if format == project.FormatJSON {
		return project.WriteJSON(w, report)
	}

	if len(report.Changed) > 0 {
		if _, err := fmt.Fprintf(w, "\nChanged: %s\n", strings.Join(report.Changed, ", ")); err != nil {
			return err
		}
	}
	return report.WriteText(w)
}
