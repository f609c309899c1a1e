// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func newStatsCmd(a *app) *cobra.Command {
	var curve curveFlags
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print vertex, index and segment counts of the curve",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mesh, err := a.mesh(cmd, &curve)
			if err != nil {
				return err
			}
			lo, hi := mesh.Bounds()
			p := message.NewPrinter(language.English)
			w := cmd.OutOrStdout()
			p.Fprintf(w, "variant:  %s\n", mesh.Params.Variant)
			p.Fprintf(w, "depth:    %d\n", mesh.Params.Depth)
			p.Fprintf(w, "vertices: %d\n", mesh.VertexCount())
			p.Fprintf(w, "indices:  %d\n", mesh.IndexCount())
			p.Fprintf(w, "segments: %d\n", mesh.SegmentCount())
			p.Fprintf(w, "bounds:   (%.4g, %.4g, %.4g) to (%.4g, %.4g, %.4g)\n",
				lo.X, lo.Y, lo.Z, hi.X, hi.Y, hi.Z)
			return nil
		},
	}
	curve.register(cmd)
	return cmd
}
