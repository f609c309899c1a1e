// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package arrowhead

import (
	"context"
	"iter"
	"math"

	"cogentcore.org/core/math32"
	"golang.org/x/sync/errgroup"
)

// Color is a linear RGB triple with components in [0, 1].
type Color struct {
	R, G, B float32
}

// RGB is a convenience function to create a Color.
func RGB(r, g, b float32) Color {
	return Color{R: r, G: g, B: b}
}

// Common colors.
var (
	White = Color{1, 1, 1}
	Black = Color{0, 0, 0}
)

// Valid reports whether every component lies in [0, 1].
func (c Color) Valid() bool {
	in := func(v float32) bool { return v >= 0 && v <= 1 }
	return in(c.R) && in(c.G) && in(c.B)
}

// Vertex is one entry of the vertex buffer.
type Vertex struct {
	Pos   math32.Vector3
	Color Color
}

// ColorRule assigns a color to the i-th of n vertices.
type ColorRule func(i, n int) Color

// ConstantColor returns a rule that paints every vertex with c.
func ConstantColor(c Color) ColorRule {
	return func(int, int) Color { return c }
}

// Gradient returns a rule that sweeps smoothly through the spectrum along
// the curve. Each channel is the absolute value of a sinusoid of the
// normalized vertex index, phase-shifted by a third of a period.
func Gradient() ColorRule {
	const third = 2 * math.Pi / 3
	return func(i, n int) Color {
		t := float32(0)
		if n > 1 {
			t = float32(i) / float32(n-1)
		}
		a := t * math32.Pi
		return Color{
			R: math32.Abs(math32.Sin(a)),
			G: math32.Abs(math32.Sin(a + third)),
			B: math32.Abs(math32.Sin(a + 2*third)),
		}
	}
}

// BuildOption configures Build.
type BuildOption func(*buildOptions)

type buildOptions struct {
	workers   int
	chunkSize int
}

func defaultBuildOptions() buildOptions {
	return buildOptions{workers: 1, chunkSize: 1 << 14}
}

// WithWorkers splits vertex construction across n goroutines. Output is
// identical to the sequential build. Values below 1 are treated as 1.
func WithWorkers(n int) BuildOption {
	return func(o *buildOptions) {
		o.workers = max(n, 1)
	}
}

// WithChunkSize sets the number of vertices handed to a worker at once.
func WithChunkSize(n int) BuildOption {
	return func(o *buildOptions) {
		if n > 0 {
			o.chunkSize = n
		}
	}
}

// Build scales positions uniformly, colors them with rule and returns the
// vertex buffer together with its line-list index buffer.
//
// scale must be positive; a nil rule paints every vertex white.
func Build(positions []math32.Vector3, scale float32, rule ColorRule, opts ...BuildOption) ([]Vertex, []uint32) {
	// BuildContext fails only when its context is done.
	vertices, indices, _ := BuildContext(context.Background(), positions, scale, rule, opts...)
	return vertices, indices
}

// BuildContext is Build with cancellation. Chunks not yet started when ctx
// is done are skipped and the context error is returned.
func BuildContext(ctx context.Context, positions []math32.Vector3, scale float32, rule ColorRule, opts ...BuildOption) ([]Vertex, []uint32, error) {
	o := defaultBuildOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if rule == nil {
		rule = ConstantColor(White)
	}

	n := len(positions)
	vertices := make([]Vertex, n)
	fill := func(ctx context.Context, lo, hi int) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		for i := lo; i < hi; i++ {
			vertices[i] = Vertex{Pos: positions[i].MulScalar(scale), Color: rule(i, n)}
		}
		return nil
	}

	if o.workers <= 1 || n <= o.chunkSize {
		if err := fill(ctx, 0, n); err != nil {
			return nil, nil, err
		}
		return vertices, LineListIndices(n), nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for lo := 0; lo < n; lo += o.chunkSize {
		hi := min(lo+o.chunkSize, n)
		g.Go(func() error {
			return fill(gctx, lo, hi)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return vertices, LineListIndices(n), nil
}

// LineListIndices returns the index buffer that draws a polyline of n
// vertices as independent line segments: (0,1), (1,2), (2,3), ...
// Index k is (k+1)/2, for k in [0, 2(n-1)). It is empty for n <= 1.
func LineListIndices(n int) []uint32 {
	if n <= 1 {
		return []uint32{}
	}
	indices := make([]uint32, 2*(n-1))
	for k := range indices {
		indices[k] = uint32((k + 1) / 2)
	}
	return indices
}

// Embed2D lifts planar positions into 3D with Z = 0.
func Embed2D(seq iter.Seq[math32.Vector2]) iter.Seq[math32.Vector3] {
	return func(yield func(math32.Vector3) bool) {
		for p := range seq {
			if !yield(math32.Vec3(p.X, p.Y, 0)) {
				return
			}
		}
	}
}
