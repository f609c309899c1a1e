// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package arrowhead

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"cogentcore.org/core/math32"
)

// Variant selects the curve formulation.
type Variant uint8

const (
	// Variant3D walks the curve with quaternion headings.
	Variant3D Variant = iota

	// Variant2D walks the curve over six planar directions.
	Variant2D
)

// ErrUnknownVariant is returned by ParseVariant for unrecognized names.
var ErrUnknownVariant = errors.New("arrowhead: unknown variant")

// String returns "3d" or "2d".
func (v Variant) String() string {
	switch v {
	case Variant3D:
		return "3d"
	case Variant2D:
		return "2d"
	default:
		return fmt.Sprintf("Variant(%d)", uint8(v))
	}
}

// ParseVariant parses "3d" or "2d" (case-insensitive).
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "3d":
		return Variant3D, nil
	case "2d":
		return Variant2D, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownVariant, s)
	}
}

// Params are the session inputs of a mesh. They are expected to be
// validated by the caller.
type Params struct {
	Variant Variant
	Depth   int
	Scale   float32

	// Color paints every vertex unless Gradient is set.
	Color    Color
	Gradient bool
}

// DefaultParams returns a depth-12 3D curve scaled by 0.05, in white.
func DefaultParams() Params {
	return Params{
		Variant: Variant3D,
		Depth:   12,
		Scale:   0.05,
		Color:   White,
	}
}

// MaxDepth is the deepest curve Validate accepts. A depth-16 curve already
// has 43,046,722 vertices.
const MaxDepth = 16

// Parameter validation errors.
var (
	ErrInvalidDepth = errors.New("arrowhead: invalid depth")
	ErrInvalidScale = errors.New("arrowhead: invalid scale")
	ErrInvalidColor = errors.New("arrowhead: invalid color")
)

// Validate reports every problem with p, joined.
func (p Params) Validate() error {
	var errs []error
	if p.Variant != Variant3D && p.Variant != Variant2D {
		errs = append(errs, fmt.Errorf("%w: %d", ErrUnknownVariant, uint8(p.Variant)))
	}
	if p.Depth < 0 || p.Depth > MaxDepth {
		errs = append(errs, fmt.Errorf("%w: %d not in [0, %d]", ErrInvalidDepth, p.Depth, MaxDepth))
	}
	if !(p.Scale > 0) || math32.IsInf(p.Scale, 0) {
		errs = append(errs, fmt.Errorf("%w: %v must be positive and finite", ErrInvalidScale, p.Scale))
	}
	if !p.Color.Valid() {
		errs = append(errs, fmt.Errorf("%w: %v outside [0, 1]", ErrInvalidColor, p.Color))
	}
	return errors.Join(errs...)
}

// ColorRule returns the color policy selected by p.
func (p Params) ColorRule() ColorRule {
	if p.Gradient {
		return Gradient()
	}
	return ConstantColor(p.Color)
}

// Positions returns the unscaled positions of the selected variant,
// embedded into 3D.
func Positions(v Variant, depth int) []math32.Vector3 {
	out := make([]math32.Vector3, 0, PointCount(depth))
	if v == Variant2D {
		return slices.AppendSeq(out, Embed2D(Generate2D(depth)))
	}
	return slices.AppendSeq(out, Generate3D(depth))
}

// Mesh is an immutable vertex/index buffer pair built from Params.
type Mesh struct {
	Params   Params
	Vertices []Vertex
	Indices  []uint32
}

// NewMesh generates the curve described by p and builds its buffers.
func NewMesh(p Params, opts ...BuildOption) *Mesh {
	// Only cancellation fails a build.
	m, _ := NewMeshContext(context.Background(), p, opts...)
	return m
}

// NewMeshContext is NewMesh with cancellation of the vertex build.
func NewMeshContext(ctx context.Context, p Params, opts ...BuildOption) (*Mesh, error) {
	start := time.Now()
	vertices, indices, err := BuildContext(ctx, Positions(p.Variant, p.Depth), p.Scale, p.ColorRule(), opts...)
	if err != nil {
		return nil, fmt.Errorf("arrowhead: build %s depth %d: %w", p.Variant, p.Depth, err)
	}
	Logger().Debug("arrowhead: mesh built",
		"params", p,
		"vertices", len(vertices),
		"indices", len(indices),
		"elapsed", time.Since(start))
	return &Mesh{Params: p, Vertices: vertices, Indices: indices}, nil
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int { return len(m.Vertices) }

// IndexCount returns the number of indices.
func (m *Mesh) IndexCount() int { return len(m.Indices) }

// SegmentCount returns the number of line segments drawn by the mesh.
func (m *Mesh) SegmentCount() int { return len(m.Indices) / 2 }

// Bounds returns the axis-aligned bounding box of the vertex positions.
// An empty mesh has zero bounds.
func (m *Mesh) Bounds() (lo, hi math32.Vector3) {
	if len(m.Vertices) == 0 {
		return lo, hi
	}
	lo, hi = m.Vertices[0].Pos, m.Vertices[0].Pos
	for _, v := range m.Vertices[1:] {
		lo = lo.Min(v.Pos)
		hi = hi.Max(v.Pos)
	}
	return lo, hi
}
