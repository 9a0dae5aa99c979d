package main

import (
	"context"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/vitalvas/oasamples/errors"
	"github.com/vitalvas/oasamples/pipeline"
	"github.com/vitalvas/oasamples/watch"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <input> <output.json> [targets...|default]",
		Short: "Enrich a document and re-run whenever the input changes",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.runWatch(cmd.Context(), pipeline.Options{
				Input:   args[0],
				Output:  args[1],
				Targets: ctx.targets(args[2:]),
				Logger:  ctx.log,
			})
		},
	}

	cmd.Flags().Int("debounce", 0, "Milliseconds to wait after a change before rebuilding")
	return cmd
}

func (c *commandContext) runWatch(ctx context.Context, opts pipeline.Options) error {
	if sameFile(opts.Input, opts.Output) {
		return errors.WithHint(
			errors.Config(errors.New("watch output must differ from its input")),
			"writing the output would trigger another run",
		)
	}

	if _, err := pipeline.Run(ctx, opts); err != nil {
		return err
	}

	debounce := time.Duration(c.cfg.Watch.DebounceMS) * time.Millisecond
	w := watch.New(opts.Input, debounce, func(ctx context.Context) error {
		_, err := pipeline.Run(ctx, opts)
		return err
	}, c.log)

	return w.Run(ctx)
}

func sameFile(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
