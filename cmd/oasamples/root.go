package main

import (
	"github.com/spf13/cobra"

	"github.com/vitalvas/oasamples/pipeline"
	"github.com/vitalvas/oasamples/version"
)

func newRootCommand(ctx *commandContext) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "oasamples <input> <output.json> [targets...|default]",
		Short: "Add x-code-samples to OpenAPI documents",
		Long: `oasamples reads an OpenAPI 2.0 or 3.x document (JSON, or YAML for .yml/.yaml
files), generates a client code sample per target for every operation and
writes the result as JSON.

Existing x-code-samples entries are never replaced: a sample is written only
into a position that is still empty, so re-running on its own output is a
no-op. The output name may contain {hash}, replaced by the SHA-256 of the
enriched document.

Examples:
  oasamples api.yaml api.json
  oasamples api.yaml api.json shell_curl python_requests
  oasamples api.json dist/api-{hash}.json default -vv`,
		Args:          cobra.MinimumNArgs(2),
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return ctx.load(cmd)
		},
		RunE: ctx.runEnrich,
	}

	rootCmd.PersistentFlags().StringVarP(&ctx.configPath, "config", "c", "", "TOML configuration file")
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase verbosity (-v info, -vv debug)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Always log as JSON")

	rootCmd.AddCommand(newEnrichCommand(ctx))
	rootCmd.AddCommand(newTargetsCommand())
	rootCmd.AddCommand(newServeCommand(ctx))
	rootCmd.AddCommand(newWatchCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

func newEnrichCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "enrich <input> <output.json> [targets...|default]",
		Short: "Enrich a document (same as the root command)",
		Args:  cobra.MinimumNArgs(2),
		RunE:  ctx.runEnrich,
	}
}

func (c *commandContext) runEnrich(cmd *cobra.Command, args []string) error {
	_, err := pipeline.Run(cmd.Context(), pipeline.Options{
		Input:   args[0],
		Output:  args[1],
		Targets: c.targets(args[2:]),
		Logger:  c.log,
	})
	return err
}
