// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"image"
	"io"
	"sync"

	"cogentcore.org/core/math32"
	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/arrowhead"
)

// captionSize is the caption font size in pixels.
const captionSize = 12

// captionFont loads the embedded Go Regular face once per process.
var captionFont = sync.OnceValues(func() (*text.FontSource, error) {
	return text.NewFontSource(goregular.TTF)
})

// RasterOption configures a Raster.
type RasterOption func(*Raster)

// WithProjection selects how 3D positions reach the image plane.
func WithProjection(p Projection) RasterOption {
	return func(r *Raster) {
		r.projection = p
	}
}

// WithLineWidth sets the stroke width in pixels. Non-positive values are
// ignored.
func WithLineWidth(w float64) RasterOption {
	return func(r *Raster) {
		if w > 0 {
			r.lineWidth = w
		}
	}
}

// WithBackground sets the clear color.
func WithBackground(c arrowhead.Color) RasterOption {
	return func(r *Raster) {
		r.background = c
	}
}

// WithMargin sets the empty border around the curve, in pixels.
func WithMargin(px float64) RasterOption {
	return func(r *Raster) {
		r.margin = max(px, 0)
	}
}

// WithCaption enables a one-line caption with the variant, depth and vertex
// count in the bottom-left corner.
func WithCaption(on bool) RasterOption {
	return func(r *Raster) {
		r.caption = on
	}
}

// Raster draws meshes with the gg software renderer.
//
// The mesh is fitted to the image with a uniform scale, so Params.Scale
// does not change the picture. Consecutive segments whose colors agree at
// 8-bit precision are stroked as one path.
type Raster struct {
	width, height int
	projection    Projection
	lineWidth     float64
	background    arrowhead.Color
	margin        float64
	caption       bool

	ctx     *gg.Context
	strokes int
}

// NewRaster creates a width x height raster with a black background.
func NewRaster(width, height int, opts ...RasterOption) *Raster {
	r := &Raster{
		width:      width,
		height:     height,
		projection: ProjectionFront,
		lineWidth:  1,
		background: arrowhead.Black,
		margin:     16,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.ctx = gg.NewContext(width, height)
	return r
}

// Draw clears the raster and strokes every segment of mesh.
func (r *Raster) Draw(mesh *arrowhead.Mesh) error {
	if mesh == nil || mesh.SegmentCount() == 0 {
		return ErrEmptyMesh
	}
	r.ctx.ClearWithColor(ggColor(r.background))
	r.ctx.SetLineWidth(r.lineWidth)
	r.ctx.SetLineCap(gg.LineCapRound)
	r.strokes = 0

	pts := r.fit(mesh.Vertices)

	var cur [3]uint8
	open := false
	for k := 0; k+1 < len(mesh.Indices); k += 2 {
		a, b := mesh.Indices[k], mesh.Indices[k+1]
		key := quantize(mesh.Vertices[a].Color)
		if !open || key != cur {
			if open {
				if err := r.stroke(); err != nil {
					return err
				}
			}
			c := mesh.Vertices[a].Color
			r.ctx.SetRGB(float64(c.R), float64(c.G), float64(c.B))
			r.ctx.MoveTo(pts[a].X, pts[a].Y)
			cur, open = key, true
		}
		r.ctx.LineTo(pts[b].X, pts[b].Y)
	}
	if err := r.stroke(); err != nil {
		return err
	}

	if r.caption {
		if err := r.drawCaption(mesh); err != nil {
			return err
		}
	}
	arrowhead.Logger().Debug("render: raster drawn",
		"segments", mesh.SegmentCount(),
		"strokes", r.strokes,
		"projection", r.projection.String())
	return nil
}

func (r *Raster) stroke() error {
	r.strokes++
	if err := r.ctx.Stroke(); err != nil {
		return fmt.Errorf("render: stroke: %w", err)
	}
	return nil
}

// Strokes returns the number of stroke calls issued by the last Draw.
func (r *Raster) Strokes() int {
	return r.strokes
}

type point struct{ X, Y float64 }

// fit projects vertices and maps them into the image, preserving aspect
// ratio and flipping Y so that +Y points up.
func (r *Raster) fit(vertices []arrowhead.Vertex) []point {
	proj := make([]math32.Vector2, len(vertices))
	for i, v := range vertices {
		proj[i] = r.projection.Project(v.Pos)
	}
	lo, hi := proj[0], proj[0]
	for _, p := range proj[1:] {
		lo = lo.Min(p)
		hi = hi.Max(p)
	}

	span := hi.Sub(lo)
	availW := float64(r.width) - 2*r.margin
	availH := float64(r.height) - 2*r.margin
	scale := 1.0
	switch {
	case span.X > 0 && span.Y > 0:
		scale = min(availW/float64(span.X), availH/float64(span.Y))
	case span.X > 0:
		scale = availW / float64(span.X)
	case span.Y > 0:
		scale = availH / float64(span.Y)
	}
	offX := r.margin + (availW-float64(span.X)*scale)/2
	offY := r.margin + (availH-float64(span.Y)*scale)/2

	out := make([]point, len(proj))
	for i, p := range proj {
		out[i] = point{
			X: offX + float64(p.X-lo.X)*scale,
			Y: float64(r.height) - (offY + float64(p.Y-lo.Y)*scale),
		}
	}
	return out
}

func (r *Raster) drawCaption(mesh *arrowhead.Mesh) error {
	src, err := captionFont()
	if err != nil {
		return fmt.Errorf("render: load caption font: %w", err)
	}
	r.ctx.SetFont(src.Face(captionSize))
	fg := contrast(r.background)
	r.ctx.SetRGB(float64(fg.R), float64(fg.G), float64(fg.B))
	r.ctx.DrawStringAnchored(Caption(mesh), 8, float64(r.height)-8, 0, 0)
	return nil
}

// Caption describes a mesh as "<variant> depth <d>, <n> vertices", with
// digit grouping.
func Caption(mesh *arrowhead.Mesh) string {
	p := message.NewPrinter(language.English)
	return p.Sprintf("%s depth %d, %d vertices", mesh.Params.Variant, mesh.Params.Depth, mesh.VertexCount())
}

// Image returns the rendered image.
func (r *Raster) Image() image.Image {
	return r.ctx.Image()
}

// SavePNG writes the raster to a PNG file.
func (r *Raster) SavePNG(path string) error {
	return r.ctx.SavePNG(path)
}

// EncodePNG writes the raster as PNG to w.
func (r *Raster) EncodePNG(w io.Writer) error {
	return r.ctx.EncodePNG(w)
}

// Close releases the drawing context.
func (r *Raster) Close() error {
	return r.ctx.Close()
}

func ggColor(c arrowhead.Color) gg.RGBA {
	return gg.RGB(float64(c.R), float64(c.G), float64(c.B))
}

func quantize(c arrowhead.Color) [3]uint8 {
	q := func(v float32) uint8 { return uint8(math32.Clamp(v, 0, 1)*255 + 0.5) }
	return [3]uint8{q(c.R), q(c.G), q(c.B)}
}

// contrast returns black or white, whichever reads better on c.
func contrast(c arrowhead.Color) arrowhead.Color {
	if 0.299*c.R+0.587*c.G+0.114*c.B > 0.5 {
		return arrowhead.Black
	}
	return arrowhead.White
}
