// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/arrowhead"
	"github.com/gogpu/arrowhead/render"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		curve curveFlags
		out   string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the encoded vertex and index buffers",
		Long: `Export writes the mesh in the binary format served by /v1/mesh: the
magic "AHM1", little-endian vertex and index counts, then the vertex
buffer (position and color, six float32 each) and the uint32 index buffer.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mesh, err := a.mesh(cmd, &curve)
			if err != nil {
				return err
			}
			blob := render.EncodeMesh(mesh)
			if out == "-" {
				_, err = cmd.OutOrStdout().Write(blob)
				return err
			}
			if err := os.WriteFile(out, blob, 0o644); err != nil {
				return fmt.Errorf("export: %w", err)
			}
			arrowhead.Logger().Info("mesh written", "path", out, "bytes", len(blob))
			return nil
		},
	}
	curve.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "-", "output file, - for standard output")
	return cmd
}
