// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gogpu/arrowhead"
	"github.com/gogpu/arrowhead/internal/config"
	"github.com/gogpu/arrowhead/render"
)

type renderFlags struct {
	curve      curveFlags
	width      int
	height     int
	projection string
	lineWidth  float64
	background string
	caption    bool
	out        string
}

func newRenderCmd(a *app) *cobra.Command {
	f := &renderFlags{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the curve to a PNG image",
		Long: `Render draws the curve with the software rasterizer and writes a PNG.
Use --out - to write the image to standard output.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.render(cmd, f)
		},
	}
	f.curve.register(cmd)
	def := config.Default().Render
	cmd.Flags().IntVar(&f.width, "width", def.Width, "image width in pixels")
	cmd.Flags().IntVar(&f.height, "height", def.Height, "image height in pixels")
	cmd.Flags().StringVarP(&f.projection, "projection", "p", def.Projection, "projection: front, top or iso")
	cmd.Flags().Float64Var(&f.lineWidth, "line-width", def.LineWidth, "stroke width in pixels")
	cmd.Flags().StringVar(&f.background, "background", def.Background, "background color")
	cmd.Flags().BoolVar(&f.caption, "caption", false, "print variant, depth and vertex count")
	cmd.Flags().StringVarP(&f.out, "out", "o", "arrowhead.png", "output file")
	return cmd
}

func (a *app) render(cmd *cobra.Command, f *renderFlags) error {
	r := &a.cfg.Render
	flags := cmd.Flags()
	if flags.Changed("width") {
		r.Width = f.width
	}
	if flags.Changed("height") {
		r.Height = f.height
	}
	if flags.Changed("projection") {
		r.Projection = f.projection
	}
	if flags.Changed("line-width") {
		r.LineWidth = f.lineWidth
	}
	if flags.Changed("background") {
		r.Background = f.background
	}
	if flags.Changed("caption") {
		r.Caption = f.caption
	}
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", config.ErrInvalidRender, r.Width, r.Height)
	}
	opts, err := a.cfg.RasterOptions()
	if err != nil {
		return err
	}

	mesh, err := a.mesh(cmd, &f.curve)
	if err != nil {
		return err
	}
	raster := render.NewRaster(r.Width, r.Height, opts...)
	defer raster.Close()
	if err := raster.Draw(mesh); err != nil {
		return err
	}

	if f.out == "-" {
		return raster.EncodePNG(cmd.OutOrStdout())
	}
	if err := raster.SavePNG(f.out); err != nil {
		return err
	}
	arrowhead.Logger().Info("image written", "path", f.out,
		"width", r.Width, "height", r.Height, "strokes", raster.Strokes())
	return nil
}
