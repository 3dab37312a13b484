package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/aretw0/cyoa/pkg/report"
)

// ListRuns prints a table of archived runs.
func ListRuns(ctx context.Context, cfg Config, out io.Writer) error {
	store, closer, err := OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	ids, err := store.List(ctx)
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}
	if len(ids) == 0 {
		fmt.Fprintln(out, "No runs archived.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDOCUMENT\tFINISHED\tRESULTS")
	for _, id := range ids {
		run, err := store.Load(ctx, id)
		if err != nil {
			// Expired or removed between List and Load.
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n",
			run.ID,
			run.Document,
			run.FinishedAt.Local().Format(time.DateTime),
			run.Results.Len(),
		)
	}
	return tw.Flush()
}

// InspectRun prints one archived run in the given report format.
func InspectRun(ctx context.Context, cfg Config, runID, format string, out io.Writer) error {
	f, err := report.ParseFormat(firstNonEmpty(format, cfg.Format))
	if err != nil {
		return err
	}

	store, closer, err := OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	run, err := store.Load(ctx, runID)
	if err != nil {
		return fmt.Errorf("load run %s: %w", runID, err)
	}

	if f == report.FormatJSON {
		return report.JSON(out, run.Results)
	}
	fmt.Fprintf(out, "Run:      %s\n", run.ID)
	fmt.Fprintf(out, "Document: %s\n", run.Document)
	fmt.Fprintf(out, "Seed:     %d\n", run.Seed)
	fmt.Fprintf(out, "Duration: %s\n\n", run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond))
	return report.Write(out, f, run.Results, report.Options{Separator: cfg.ListSeparator})
}

// DeleteRun removes an archived run.
func DeleteRun(ctx context.Context, cfg Config, runID string) error {
	store, closer, err := OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	if err := store.Delete(ctx, runID); err != nil {
		return fmt.Errorf("delete run %s: %w", runID, err)
	}
	return nil
}
