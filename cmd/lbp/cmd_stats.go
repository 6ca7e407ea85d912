package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/loopy/core"
	"github.com/katalvlaran/loopy/modelio"
	"github.com/katalvlaran/loopy/wiring"
)

func newStatsCmd(a *app) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "stats -f MODEL",
		Short: "Print graph and compiled layout sizes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := modelio.Load(file)
			if err != nil {
				return err
			}
			g, err := doc.Build()
			if err != nil {
				return err
			}
			w, err := wiring.Compile(g, wiring.WithLogger(a.logger))
			if err != nil {
				return err
			}

			gs, ws := g.Stats(), w.Stats()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "variables: %d (isolated %d)\n", gs.Variables, gs.Isolated)
			fmt.Fprintf(out, "factors: %d  edges: %d\n", gs.Factors, gs.Edges)
			fmt.Fprintf(out, "variable states: %d  edge states: %d\n", ws.VariableStates, ws.EdgeStates)
			fmt.Fprintf(out, "groups: %d  plan entries: %d\n", ws.Groups, ws.PlanEntries)
			kinds := make([]core.Kind, 0, len(ws.ByKind))
			for k := range ws.ByKind {
				kinds = append(kinds, k)
			}
			slices.Sort(kinds)
			for _, k := range kinds {
				fmt.Fprintf(out, "  %-12s %d\n", k, ws.ByKind[k])
			}

			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "model YAML file (required)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
