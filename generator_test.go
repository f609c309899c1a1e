// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package arrowhead

import (
	"slices"
	"testing"

	"cogentcore.org/core/math32"
)

// referenceWalk expands the grammar recursively. It performs the same
// sequence of Apply calls as State, so outputs must match bit for bit.
func referenceWalk[H any, T comparable, P any](m Model[H, T, P], r *Rules[T], depth int) []P {
	pos, heading := m.Start()
	out := []P{pos}
	if depth <= 0 {
		return out
	}
	var visit func(f Frame[T])
	visit = func(f Frame[T]) {
		var moved bool
		pos, heading, moved = m.Apply(pos, heading, f.Turn)
		if moved {
			out = append(out, pos)
		}
		if f.Depth > 0 {
			kids := r.Expand(f)
			for i := len(kids) - 1; i >= 0; i-- {
				visit(kids[i])
			}
		}
	}
	visit(r.RootFrame(depth))
	return out
}

func approx2(a, b math32.Vector2, eps float32) bool {
	return math32.Abs(a.X-b.X) < eps && math32.Abs(a.Y-b.Y) < eps
}

func approx3(a, b math32.Vector3, eps float32) bool {
	return math32.Abs(a.X-b.X) < eps && math32.Abs(a.Y-b.Y) < eps && math32.Abs(a.Z-b.Z) < eps
}

func TestPointCount(t *testing.T) {
	tests := []struct {
		depth int
		want  int
	}{
		{-1, 1},
		{0, 1},
		{1, 4},
		{2, 10},
		{3, 28},
		{6, 730},
	}
	for _, tt := range tests {
		if got := PointCount(tt.depth); got != tt.want {
			t.Errorf("PointCount(%d) = %d, want %d", tt.depth, got, tt.want)
		}
	}
}

func TestGenerate_Count(t *testing.T) {
	for depth := 0; depth <= 7; depth++ {
		n3 := len(slices.Collect(Generate3D(depth)))
		if n3 != PointCount(depth) {
			t.Errorf("3D depth %d: got %d positions, want %d", depth, n3, PointCount(depth))
		}
		n2 := len(slices.Collect(Generate2D(depth)))
		if n2 != PointCount(depth) {
			t.Errorf("2D depth %d: got %d positions, want %d", depth, n2, PointCount(depth))
		}
	}
}

func TestGenerate_DepthZeroIsOrigin(t *testing.T) {
	p3 := slices.Collect(Generate3D(0))
	if len(p3) != 1 || p3[0] != (math32.Vector3{}) {
		t.Errorf("Generate3D(0) = %v, want [origin]", p3)
	}
	p2 := slices.Collect(Generate2D(0))
	if len(p2) != 1 || p2[0] != (math32.Vector2{}) {
		t.Errorf("Generate2D(0) = %v, want [origin]", p2)
	}
}

func TestGenerate2D_DepthOneFixture(t *testing.T) {
	h := math32.Sqrt(3) / 2
	want := []math32.Vector2{
		{X: 0, Y: 0},
		{X: 0.5, Y: h},
		{X: 1.5, Y: h},
		{X: 2, Y: 0},
	}
	got := slices.Collect(Generate2D(1))
	if len(got) != len(want) {
		t.Fatalf("got %d positions, want %d", len(got), len(want))
	}
	for i := range want {
		if !approx2(got[i], want[i], 1e-5) {
			t.Errorf("position %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestGenerate2D_DepthTwoFixture(t *testing.T) {
	h := math32.Sqrt(3) / 2
	want := []math32.Vector2{
		{X: 0, Y: 0},
		{X: 0.5, Y: h},
		{X: 0, Y: 2 * h},
		{X: -1, Y: 2 * h},
		{X: -1.5, Y: 3 * h},
		{X: -1, Y: 4 * h},
		{X: 0, Y: 4 * h},
		{X: 0.5, Y: 3 * h},
		{X: 1.5, Y: 3 * h},
		{X: 2, Y: 4 * h},
	}
	got := slices.Collect(Generate2D(2))
	if len(got) != len(want) {
		t.Fatalf("got %d positions, want %d", len(got), len(want))
	}
	for i := range want {
		if !approx2(got[i], want[i], 1e-5) {
			t.Errorf("position %d = %v, want %v", i, got[i], want[i])
		}
	}
}

// vertexKey snaps p to a quarter-unit grid. Distinct lattice points differ
// by at least half a unit in X or √3/2 in Y, so they never share a key.
func vertexKey(p math32.Vector2) [2]int32 {
	return [2]int32{int32(math32.Round(p.X * 4)), int32(math32.Round(p.Y * 4))}
}

func TestGenerate2D_ArrowheadShape(t *testing.T) {
	for depth := 1; depth <= 7; depth++ {
		pts := slices.Collect(Generate2D(depth))

		seen := make(map[[2]int32]int, len(pts))
		for i, p := range pts {
			if j, dup := seen[vertexKey(p)]; dup {
				t.Fatalf("depth %d: position %d revisits position %d at %v", depth, i, j, p)
			}
			seen[vertexKey(p)] = i
		}

		end := pts[len(pts)-1]
		span := float32(int(1) << depth)
		if d := end.Length(); math32.Abs(d-span) > 1e-3*span {
			t.Errorf("depth %d: endpoint distance %v, want %v", depth, d, span)
		}

		// Every vertex lies in the equilateral triangle on the start-end
		// segment, on the left of the direction of travel.
		u := end.DivScalar(end.Length())
		n := math32.Vec2(-u.Y, u.X)
		tol := float32(1e-3) * span
		for i, p := range pts {
			a, b := p.Dot(u), p.Dot(n)
			if b < -tol || b > math32.Sqrt(3)*min(a, span-a)+tol {
				t.Fatalf("depth %d: position %d = %v leaves the triangle", depth, i, p)
			}
		}
	}
}

func TestGenerate3D_FirstStep(t *testing.T) {
	// The root turn is A: 60° about +Y carries the +X step to (cos 60°, 0, -sin 60°).
	got := slices.Collect(Generate3D(1))
	if len(got) != 4 {
		t.Fatalf("got %d positions, want 4", len(got))
	}
	want := math32.Vec3(0.5, 0, -math32.Sqrt(3)/2)
	if !approx3(got[1], want, 1e-5) {
		t.Errorf("first step = %v, want %v", got[1], want)
	}
}

func TestGenerate_UnitSteps(t *testing.T) {
	p3 := slices.Collect(Generate3D(5))
	for i := 1; i < len(p3); i++ {
		if d := p3[i].Sub(p3[i-1]).Length(); math32.Abs(d-1) > 1e-4 {
			t.Fatalf("3D step %d has length %v, want 1", i, d)
		}
	}
	p2 := slices.Collect(Generate2D(5))
	for i := 1; i < len(p2); i++ {
		if d := p2[i].Sub(p2[i-1]).Length(); math32.Abs(d-1) > 1e-4 {
			t.Fatalf("2D step %d has length %v, want 1", i, d)
		}
	}
}

func TestGenerate_MatchesRecursiveWalk(t *testing.T) {
	for depth := 0; depth <= 6; depth++ {
		want3 := referenceWalk[math32.Quat, AxisTurn, math32.Vector3](defaultAxisModel, &AxisRules, depth)
		if got := slices.Collect(Generate3D(depth)); !slices.Equal(got, want3) {
			t.Errorf("3D depth %d: stack generator diverges from recursive walk", depth)
		}
		want2 := referenceWalk[HexHeading, HexTurn, math32.Vector2](defaultHexModel, &HexRules, depth)
		if got := slices.Collect(Generate2D(depth)); !slices.Equal(got, want2) {
			t.Errorf("2D depth %d: stack generator diverges from recursive walk", depth)
		}
	}
}

func TestGenerate_DepthTwoEndpoints(t *testing.T) {
	got3 := slices.Collect(Generate3D(2))
	want3 := referenceWalk[math32.Quat, AxisTurn, math32.Vector3](defaultAxisModel, &AxisRules, 2)
	if len(got3) != 10 {
		t.Fatalf("3D: got %d positions, want 10", len(got3))
	}
	if got3[0] != want3[0] || got3[9] != want3[len(want3)-1] {
		t.Errorf("3D endpoints = %v..%v, want %v..%v", got3[0], got3[9], want3[0], want3[len(want3)-1])
	}

	got2 := slices.Collect(Generate2D(2))
	if len(got2) != 10 {
		t.Fatalf("2D: got %d positions, want 10", len(got2))
	}
	if !approx2(got2[9], math32.Vec2(2, 2*math32.Sqrt(3)), 1e-5) {
		t.Errorf("2D last position = %v, want (2, 2√3)", got2[9])
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	a := slices.Collect(Generate3D(6))
	b := slices.Collect(Generate3D(6))
	if !slices.Equal(a, b) {
		t.Error("3D generation is not deterministic")
	}
	c := slices.Collect(Generate2D(6))
	d := slices.Collect(Generate2D(6))
	if !slices.Equal(c, d) {
		t.Error("2D generation is not deterministic")
	}
}

func TestGenerate_Reiterable(t *testing.T) {
	seq := Generate2D(3)
	first := slices.Collect(seq)
	second := slices.Collect(seq)
	if !slices.Equal(first, second) {
		t.Error("ranging over the same sequence twice gave different output")
	}
}

func TestGenerate_EarlyBreak(t *testing.T) {
	n := 0
	for range Generate3D(8) {
		n++
		if n == 5 {
			break
		}
	}
	if n != 5 {
		t.Errorf("iterated %d positions, want 5", n)
	}
}

func TestState_StackBounded(t *testing.T) {
	for depth := 0; depth <= 8; depth++ {
		s := NewCurve2D(depth)
		maxHeight := s.StackHeight()
		for {
			if _, ok := s.Step(); !ok {
				break
			}
			maxHeight = max(maxHeight, s.StackHeight())
		}
		if maxHeight > depth {
			t.Errorf("depth %d: stack reached %d entries", depth, maxHeight)
		}
		if depth > 0 && maxHeight != depth {
			t.Errorf("depth %d: stack peaked at %d, want %d", depth, maxHeight, depth)
		}
	}
}

func TestState_StepAfterDone(t *testing.T) {
	s := NewCurve3D(1)
	if s.Done() {
		t.Fatal("fresh state reports Done")
	}
	for range 4 {
		if _, ok := s.Step(); !ok {
			t.Fatal("Step ended early")
		}
	}
	if _, ok := s.Step(); ok {
		t.Fatal("Step produced a fifth position at depth 1")
	}
	if !s.Done() {
		t.Error("Done() = false after exhaustion")
	}
	if _, ok := s.Step(); ok {
		t.Error("Step after exhaustion returned ok")
	}
}

func TestState_PositionTracksOutput(t *testing.T) {
	s := NewCurve2D(3)
	for {
		p, ok := s.Step()
		if !ok {
			break
		}
		if p != s.Position() {
			t.Fatalf("Step returned %v but Position() = %v", p, s.Position())
		}
	}
}

func TestState_HeadingAfterDepthOne(t *testing.T) {
	// Root +1, then children 0, -1, -1: net heading is 5.
	s := NewCurve2D(1)
	for range s.All() {
	}
	if s.Heading() != 5 {
		t.Errorf("final heading = %v, want 300°", s.Heading())
	}
}

func BenchmarkGenerate3D(b *testing.B) {
	for b.Loop() {
		for range Generate3D(10) {
		}
	}
}

func BenchmarkGenerate2D(b *testing.B) {
	for b.Loop() {
		for range Generate2D(10) {
		}
	}
}
