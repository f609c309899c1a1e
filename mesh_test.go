// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package arrowhead

import (
	"context"
	"errors"
	"slices"
	"testing"

	"cogentcore.org/core/math32"
)

func TestParseVariant(t *testing.T) {
	tests := []struct {
		in      string
		want    Variant
		wantErr bool
	}{
		{"3d", Variant3D, false},
		{"2D", Variant2D, false},
		{" 2d ", Variant2D, false},
		{"4d", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseVariant(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownVariant) {
				t.Errorf("ParseVariant(%q) error = %v, want ErrUnknownVariant", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseVariant(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
}

func TestVariant_String(t *testing.T) {
	for _, v := range []Variant{Variant3D, Variant2D} {
		parsed, err := ParseVariant(v.String())
		if err != nil || parsed != v {
			t.Errorf("ParseVariant(%q) = %v, %v", v.String(), parsed, err)
		}
	}
	if got := Variant(9).String(); got != "Variant(9)" {
		t.Errorf("Variant(9).String() = %q", got)
	}
}

func TestDefaultParams(t *testing.T) {
	p := DefaultParams()
	if p.Variant != Variant3D || p.Depth != 12 || p.Scale != 0.05 || p.Color != White || p.Gradient {
		t.Errorf("DefaultParams() = %+v", p)
	}
}

func TestNewMesh_Counts(t *testing.T) {
	tests := []struct {
		name  string
		p     Params
		verts int
	}{
		{"3d depth 0", Params{Variant: Variant3D, Depth: 0, Scale: 1}, 1},
		{"3d depth 2", Params{Variant: Variant3D, Depth: 2, Scale: 1}, 10},
		{"2d depth 3", Params{Variant: Variant2D, Depth: 3, Scale: 2, Gradient: true}, 28},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMesh(tt.p)
			if m.VertexCount() != tt.verts {
				t.Errorf("VertexCount() = %d, want %d", m.VertexCount(), tt.verts)
			}
			wantIdx := 0
			if tt.verts > 1 {
				wantIdx = 2 * (tt.verts - 1)
			}
			if m.IndexCount() != wantIdx {
				t.Errorf("IndexCount() = %d, want %d", m.IndexCount(), wantIdx)
			}
			if m.SegmentCount() != wantIdx/2 {
				t.Errorf("SegmentCount() = %d, want %d", m.SegmentCount(), wantIdx/2)
			}
		})
	}
}

func TestNewMesh_RoundTrip(t *testing.T) {
	p := Params{Variant: Variant3D, Depth: 6, Scale: 0.05, Gradient: true}
	a := NewMesh(p)
	b := NewMesh(p, WithWorkers(3), WithChunkSize(64))
	if !slices.Equal(a.Vertices, b.Vertices) || !slices.Equal(a.Indices, b.Indices) {
		t.Error("rebuilding a mesh with the same params produced different buffers")
	}
}

func TestMesh_Bounds(t *testing.T) {
	m := NewMesh(Params{Variant: Variant2D, Depth: 1, Scale: 2})
	lo, hi := m.Bounds()
	if !approx3(lo, math32.Vec3(0, 0, 0), 1e-5) {
		t.Errorf("lo = %v, want origin", lo)
	}
	if !approx3(hi, math32.Vec3(4, math32.Sqrt(3), 0), 1e-5) {
		t.Errorf("hi = %v, want (4, √3, 0)", hi)
	}

	empty := &Mesh{}
	lo, hi = empty.Bounds()
	if lo != (math32.Vector3{}) || hi != (math32.Vector3{}) {
		t.Errorf("empty bounds = %v %v", lo, hi)
	}
}

func TestPositions_Variants(t *testing.T) {
	p2 := Positions(Variant2D, 2)
	if len(p2) != 10 {
		t.Fatalf("2D: got %d positions", len(p2))
	}
	for _, p := range p2 {
		if p.Z != 0 {
			t.Fatalf("2D position %v has non-zero Z", p)
		}
	}
	p3 := Positions(Variant3D, 2)
	if len(p3) != 10 {
		t.Fatalf("3D: got %d positions", len(p3))
	}
}

func TestParams_Validate(t *testing.T) {
	tests := []struct {
		name string
		p    Params
		want []error
	}{
		{"defaults", DefaultParams(), nil},
		{"depth 0", Params{Scale: 1}, nil},
		{"negative depth", Params{Depth: -1, Scale: 1}, []error{ErrInvalidDepth}},
		{"too deep", Params{Depth: MaxDepth + 1, Scale: 1}, []error{ErrInvalidDepth}},
		{"zero scale", Params{Depth: 2}, []error{ErrInvalidScale}},
		{"infinite scale", Params{Depth: 2, Scale: math32.Inf(1)}, []error{ErrInvalidScale}},
		{"bad color", Params{Depth: 2, Scale: 1, Color: RGB(2, 0, 0)}, []error{ErrInvalidColor}},
		{"bad variant", Params{Variant: 5, Depth: 2, Scale: 1}, []error{ErrUnknownVariant}},
		{"several", Params{Depth: -3, Scale: -1}, []error{ErrInvalidDepth, ErrInvalidScale}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Validate()
			if len(tt.want) == 0 {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			for _, w := range tt.want {
				if !errors.Is(err, w) {
					t.Errorf("Validate() = %v, want %v", err, w)
				}
			}
		})
	}
}

func TestNewMeshContext_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m, err := NewMeshContext(ctx, Params{Variant: Variant3D, Depth: 3, Scale: 1}, WithWorkers(2), WithChunkSize(4))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if m != nil {
		t.Error("got a mesh from a canceled build")
	}

	m, err = NewMeshContext(context.Background(), Params{Variant: Variant3D, Depth: 3, Scale: 1})
	if err != nil {
		t.Fatal(err)
	}
	if m.VertexCount() != PointCount(3) {
		t.Errorf("VertexCount = %d, want %d", m.VertexCount(), PointCount(3))
	}
}
