package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/vitalvas/oasamples/openapi"
	"github.com/vitalvas/oasamples/pipeline"
	"github.com/vitalvas/oasamples/server"
	"github.com/vitalvas/oasamples/snippet"
	"github.com/vitalvas/oasamples/watch"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var watchInput bool

	cmd := &cobra.Command{
		Use:   "serve <input> [targets...|default]",
		Short: "Enrich a document and serve it with a documentation page",
		Long: `Serves the enriched document as JSON and YAML together with a Redoc,
Swagger UI or RapiDoc page. With --watch the document is rebuilt whenever the
input changes.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.runServe(cmd.Context(), args[0], args[1:], watchInput)
		},
	}

	cmd.Flags().String("addr", "", "Listen address (default from config: 127.0.0.1:8080)")
	cmd.Flags().String("ui", "", "Docs UI: redoc, swagger-ui or rapidoc")
	cmd.Flags().String("base-path", "", "URL prefix for all endpoints")
	cmd.Flags().String("title", "", "Docs page title (default: info.title)")
	cmd.Flags().Int("max-conns", 0, "Maximum concurrent connections (0: unlimited)")
	cmd.Flags().Int("debounce", 0, "Milliseconds to wait after a change before rebuilding")
	cmd.Flags().BoolVarP(&watchInput, "watch", "w", false, "Rebuild when the input changes")

	return cmd
}

func (c *commandContext) runServe(ctx context.Context, input string, args []string, watchInput bool) error {
	cfg := c.cfg

	targets, err := snippet.Resolve(c.targets(args), c.log)
	if err != nil {
		return err
	}

	srv := server.New(server.Config{Addr: cfg.Serve.Addr, MaxConns: cfg.Serve.MaxConns}, c.log)

	ui, _ := openapi.ParseDocsUI(cfg.Serve.UI)
	docs := openapi.NewHandler(srv.Router(), &openapi.HandleConfig{
		UI:       ui,
		Title:    cfg.Serve.Title,
		BasePath: cfg.Serve.BasePath,
	})

	rebuild := func(context.Context) error {
		res, err := pipeline.Enrich(input, targets, nil, c.log)
		if err != nil {
			return err
		}
		if err := docs.Update(res.Document); err != nil {
			return err
		}
		c.log.Success("document loaded", "input", input, "samples_added", res.Report.SamplesAdded)
		return nil
	}

	if err := rebuild(ctx); err != nil {
		return err
	}

	if watchInput {
		w := watch.New(input, time.Duration(cfg.Watch.DebounceMS)*time.Millisecond, rebuild, c.log)
		go func() {
			if err := w.Run(ctx); err != nil {
				c.log.Error("watcher stopped", "error", err)
			}
		}()
	}

	return srv.ListenAndServe(ctx)
}
