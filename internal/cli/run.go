package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/aretw0/cyoa"
	"github.com/aretw0/cyoa/internal/presentation/tui"
	"github.com/aretw0/cyoa/pkg/domain"
	"github.com/aretw0/cyoa/pkg/observability"
	"github.com/aretw0/cyoa/pkg/ports"
	"github.com/aretw0/cyoa/pkg/report"
	"github.com/aretw0/cyoa/pkg/runner"
)

// RunOptions holds the per-invocation flags of the run command.
type RunOptions struct {
	// Path of the XML or YAML document.
	Path string

	// Format overrides Config.Format when set.
	Format string

	// JSON switches prompts and the report to NDJSON on stdin/stdout.
	// The last line is a "results" message.
	JSON bool

	// Save archives the run in the configured store.
	Save bool

	// Quiet suppresses the banner and system messages.
	Quiet bool
}

// RunDocument evaluates the document at opts.Path, asking questions on in/out,
// and writes the report to out. An interrupted run still reports its partial results.
func RunDocument(ctx context.Context, cfg Config, opts RunOptions, in io.Reader, out io.Writer) (*domain.Run, error) {
	format, err := report.ParseFormat(firstNonEmpty(opts.Format, cfg.Format))
	if err != nil {
		return nil, err
	}
	logger, closer, err := createLogger(cfg)
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	tty, interactive := terminal(out)
	chatty := !opts.Quiet && !opts.JSON
	if interactive && chatty {
		tui.PrintBanner(out)
	}

	engineOpts := []cyoa.Option{
		cyoa.WithInteraction(interactionPort(opts, in, out, interactive)),
		cyoa.WithLogger(logger),
		cyoa.WithMaxDepth(cfg.MaxDepth),
	}
	if cfg.Seed != nil {
		engineOpts = append(engineOpts, cyoa.WithSeed(*cfg.Seed))
	}
	if cfg.Debug {
		engineOpts = append(engineOpts, cyoa.WithLifecycleHooks(observability.LogHooks(logger)))
	}
	engine := cyoa.New(engineOpts...)
	seed, _ := engine.Seed()

	runnerOpts := []runner.Option{
		runner.WithLogger(logger),
		runner.WithDocument(opts.Path),
		runner.WithSeed(seed),
	}
	if opts.Save {
		store, storeCloser, err := OpenStore(ctx, cfg)
		if err != nil {
			return nil, err
		}
		defer storeCloser.Close()
		runnerOpts = append(runnerOpts, runner.WithStore(store))
	}

	run, runErr := runner.NewRunner(engine, runnerOpts...).Load(ctx, cyoa.LoaderFor(opts.Path))
	if run == nil || (runErr != nil && !isInterrupted(runErr)) {
		return run, runErr
	}

	if isInterrupted(runErr) && chatty {
		fmt.Fprintln(out)
		printSystemMessage(out, interactive, "Interrupted; partial results follow.")
	}

	if opts.JSON {
		if err := writeResultLine(out, run, runErr); err != nil {
			return run, err
		}
		return run, handleExecutionError(runErr)
	}

	reportOpts := report.Options{Separator: cfg.ListSeparator}
	if interactive && format == report.FormatMarkdown {
		reportOpts.Markdown = tui.NewRenderer(tui.Width(tty, 80))
	}
	if format == report.FormatText {
		fmt.Fprintln(out)
	}
	if err := report.Write(out, format, run.Results, reportOpts); err != nil {
		return run, err
	}

	if opts.Save && chatty {
		printSystemMessage(out, interactive, "Run %s saved (seed %d).", run.ID, run.Seed)
	}
	return run, handleExecutionError(runErr)
}

// resultLine closes an NDJSON session: prompts come first, then this single line.
type resultLine struct {
	Type        string          `json:"type"`
	RunID       string          `json:"run_id"`
	Seed        uint64          `json:"seed"`
	Interrupted bool            `json:"interrupted,omitempty"`
	Results     *domain.Results `json:"results"`
}

func writeResultLine(w io.Writer, run *domain.Run, runErr error) error {
	return json.NewEncoder(w).Encode(resultLine{
		Type:        "results",
		RunID:       run.ID,
		Seed:        run.Seed,
		Interrupted: isInterrupted(runErr),
		Results:     run.Results,
	})
}

func interactionPort(opts RunOptions, in io.Reader, out io.Writer, interactive bool) ports.InteractionPort {
	if opts.JSON {
		return runner.NewJSONHandler(in, out)
	}
	var handlerOpts []runner.TextHandlerOption
	if interactive {
		handlerOpts = append(handlerOpts, runner.WithTextHandlerRenderer(tui.NewPromptStyler()))
	}
	return runner.NewTextHandler(in, out, handlerOpts...)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
