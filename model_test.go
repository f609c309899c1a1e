// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package arrowhead

import (
	"testing"

	"cogentcore.org/core/math32"
)

func TestHexModel_Directions(t *testing.T) {
	m := NewHexModel()
	h := math32.Sqrt(3) / 2
	want := [6]math32.Vector2{
		{X: 1, Y: 0},
		{X: 0.5, Y: h},
		{X: -0.5, Y: h},
		{X: -1, Y: 0},
		{X: -0.5, Y: -h},
		{X: 0.5, Y: -h},
	}
	for i, w := range want {
		if got := m.Direction(HexHeading(i)); !approx2(got, w, 1e-6) {
			t.Errorf("Direction(%d) = %v, want %v", i, got, w)
		}
	}
}

func TestHexHeading_Add(t *testing.T) {
	tests := []struct {
		h     HexHeading
		delta int
		want  HexHeading
	}{
		{0, 1, 1},
		{0, -1, 5},
		{5, 1, 0},
		{3, -1, 2},
		{2, 0, 2},
		{1, -7, 0},
	}
	for _, tt := range tests {
		if got := tt.h.Add(tt.delta); got != tt.want {
			t.Errorf("HexHeading(%d).Add(%d) = %d, want %d", tt.h, tt.delta, got, tt.want)
		}
	}
}

func TestHexModel_Apply(t *testing.T) {
	m := NewHexModel()
	start := math32.Vec2(1, 1)

	tests := []struct {
		name      string
		turn      HexTurn
		wantMoved bool
		wantHead  HexHeading
	}{
		{"none", TurnNone, false, 2},
		{"left", TurnLeft, true, 3},
		{"right", TurnRight, true, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, heading, moved := m.Apply(start, 2, tt.turn)
			if moved != tt.wantMoved {
				t.Fatalf("moved = %v, want %v", moved, tt.wantMoved)
			}
			if heading != tt.wantHead {
				t.Errorf("heading = %d, want %d", heading, tt.wantHead)
			}
			wantPos := start
			if tt.wantMoved {
				wantPos = start.Add(m.Direction(tt.wantHead))
			}
			if pos != wantPos {
				t.Errorf("pos = %v, want %v", pos, wantPos)
			}
		})
	}
}

func TestHexTurn_String(t *testing.T) {
	if TurnLeft.String() != "+" || TurnRight.String() != "-" || TurnNone.String() != "0" {
		t.Errorf("unexpected turn names %s %s %s", TurnLeft, TurnRight, TurnNone)
	}
	if TurnLeft.Delta() != 1 || TurnRight.Delta() != -1 || TurnNone.Delta() != 0 {
		t.Error("unexpected turn deltas")
	}
}

func TestAxisModel_NoneIsIdentity(t *testing.T) {
	m := NewAxisModel(DefaultAxisAngle)
	pos, heading := math32.Vec3(1, 2, 3), m.Rotation(AxisB)
	gotPos, gotHeading, moved := m.Apply(pos, heading, AxisNone)
	if moved {
		t.Error("AxisNone reported a move")
	}
	if gotPos != pos || gotHeading != heading {
		t.Errorf("AxisNone changed state: %v %v", gotPos, gotHeading)
	}
}

func TestAxisModel_RotationsAreUnit(t *testing.T) {
	m := NewAxisModel(DefaultAxisAngle)
	for _, turn := range []AxisTurn{AxisNone, AxisA, AxisB, AxisC} {
		q := m.Rotation(turn)
		if l := q.Length(); math32.Abs(l-1) > 1e-6 {
			t.Errorf("rotation %s has length %v, want 1", turn, l)
		}
	}
}

func TestAxisModel_ApplyMovesOneUnit(t *testing.T) {
	m := NewAxisModel(DefaultAxisAngle)
	pos, heading := m.Start()
	for _, turn := range []AxisTurn{AxisA, AxisB, AxisC, AxisA} {
		next, h, moved := m.Apply(pos, heading, turn)
		if !moved {
			t.Fatalf("turn %s did not move", turn)
		}
		if d := next.Sub(pos).Length(); math32.Abs(d-1) > 1e-5 {
			t.Errorf("turn %s moved %v, want 1", turn, d)
		}
		pos, heading = next, h
	}
}

func TestAxisModel_RightComposition(t *testing.T) {
	m := NewAxisModel(DefaultAxisAngle)
	h := m.Rotation(AxisA)
	_, got, _ := m.Apply(math32.Vector3{}, h, AxisB)
	b := m.Rotation(AxisB)
	want := h.Mul(b)
	if got != want {
		t.Errorf("heading = %v, want heading*B = %v", got, want)
	}
}

func TestAxisModel_CustomAngle(t *testing.T) {
	// A half turn about +Y sends the +X step to -X.
	m := NewAxisModel(math32.Pi)
	pos, heading := m.Start()
	pos, _, _ = m.Apply(pos, heading, AxisA)
	if !approx3(pos, math32.Vec3(-1, 0, 0), 1e-6) {
		t.Errorf("pos = %v, want (-1, 0, 0)", pos)
	}
}

func TestAxisTurn_String(t *testing.T) {
	got := AxisNone.String() + AxisA.String() + AxisB.String() + AxisC.String()
	if got != "_abc" {
		t.Errorf("turn names = %q, want %q", got, "_abc")
	}
}
