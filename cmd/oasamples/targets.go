package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/vitalvas/oasamples/snippet"
)

func newTargetsCommand() *cobra.Command {
	var idsOnly bool

	cmd := &cobra.Command{
		Use:   "targets",
		Short: "List supported targets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if idsOnly {
				for _, t := range snippet.Targets() {
					fmt.Fprintln(out, t.ID)
				}
				return nil
			}
			fmt.Fprintln(out, renderTargets(snippet.Targets()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&idsOnly, "ids", false, "Print identifiers only, one per line")
	return cmd
}

func renderTargets(targets []snippet.Target) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Target", "Language", "Default"})

	for _, t := range targets {
		def := ""
		if snippet.IsDefault(t.ID) {
			def = "yes"
		}
		tw.AppendRow(table.Row{t.ID, t.Label(), def})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignCenter, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}
