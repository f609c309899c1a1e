// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package arrowhead

import (
	"fmt"

	"cogentcore.org/core/math32"
)

// Model updates a heading from a turn instruction and reports the
// displacement that results.
//
// H is the heading type, T the turn alphabet and P the position type.
// A model is immutable after construction and safe for concurrent use.
type Model[H any, T comparable, P any] interface {
	// Start returns the initial position and heading.
	Start() (P, H)

	// Apply applies turn to heading and, unless turn is the no-turn
	// sentinel, advances pos by one unit step along the new heading.
	// moved reports whether a displacement was applied.
	Apply(pos P, heading H, turn T) (next P, nextHeading H, moved bool)
}

// AxisTurn is a turn instruction of the 3D variant. The zero value is
// AxisNone; the only other values are AxisA, AxisB and AxisC.
type AxisTurn struct {
	axis uint8
}

// 3D turn instructions.
var (
	AxisNone = AxisTurn{}
	AxisA    = AxisTurn{axis: 1}
	AxisB    = AxisTurn{axis: 2}
	AxisC    = AxisTurn{axis: 3}
)

// String returns "a", "b", "c" or "_" for the no-turn sentinel.
func (t AxisTurn) String() string {
	return [...]string{"_", "a", "b", "c"}[t.axis]
}

// DefaultAxisAngle is the rotation applied by each 3D turn, in radians.
const DefaultAxisAngle = math32.Pi / 3

// AxisModel is the 3D rotation model. The heading is a unit quaternion that
// is right-composed with one of three fixed rotations. The rotation axes lie
// in the YZ plane, 120° apart.
type AxisModel struct {
	rot  [4]math32.Quat
	step math32.Vector3
}

// NewAxisModel builds the three fixed rotations, each by angle radians.
func NewAxisModel(angle float32) *AxisModel {
	m := &AxisModel{step: math32.Vec3(1, 0, 0)}
	m.rot[0] = math32.Quat{W: 1}
	for i := 1; i < len(m.rot); i++ {
		phi := float32(i-1) * 2 * math32.Pi / 3
		axis := math32.Vec3(0, math32.Cos(phi), math32.Sin(phi))
		m.rot[i] = math32.NewQuatAxisAngle(axis, angle)
	}
	return m
}

// Rotation returns the fixed rotation bound to t. AxisNone maps to the
// identity.
func (m *AxisModel) Rotation(t AxisTurn) math32.Quat {
	return m.rot[t.axis]
}

// Start returns the origin and the identity orientation.
func (m *AxisModel) Start() (math32.Vector3, math32.Quat) {
	return math32.Vector3{}, math32.Quat{W: 1}
}

// Apply implements Model.
func (m *AxisModel) Apply(pos math32.Vector3, heading math32.Quat, turn AxisTurn) (math32.Vector3, math32.Quat, bool) {
	if turn == AxisNone {
		return pos, heading, false
	}
	heading = heading.Mul(m.rot[turn.axis])
	return pos.Add(m.step.MulQuat(heading)), heading, true
}

// HexTurn is a turn instruction of the planar variant: a signed step
// through the 6-direction table. The zero value is TurnNone.
type HexTurn struct {
	delta int8
}

// Planar turn instructions.
var (
	TurnRight = HexTurn{delta: -1}
	TurnNone  = HexTurn{}
	TurnLeft  = HexTurn{delta: 1}
)

// Delta returns -1, 0 or +1.
func (t HexTurn) Delta() int {
	return int(t.delta)
}

// String returns "-", "0" or "+".
func (t HexTurn) String() string {
	switch t.delta {
	case -1:
		return "-"
	case 1:
		return "+"
	default:
		return "0"
	}
}

// HexHeading indexes the planar direction table. Valid values are [0, 6).
type HexHeading uint8

// Add returns the heading rotated by delta sixths of a turn.
func (h HexHeading) Add(delta int) HexHeading {
	return HexHeading(((int(h)+delta)%6 + 6) % 6)
}

// String returns the heading in degrees.
func (h HexHeading) String() string {
	return fmt.Sprintf("%d°", int(h)*60)
}

// HexModel is the planar direction model over six unit directions spaced
// 60° apart, starting along +X.
type HexModel struct {
	dirs [6]math32.Vector2
}

// NewHexModel builds the direction table.
func NewHexModel() *HexModel {
	m := &HexModel{}
	for k := range m.dirs {
		a := float32(k) * math32.Pi / 3
		m.dirs[k] = math32.Vec2(math32.Cos(a), math32.Sin(a))
	}
	return m
}

// Direction returns the unit vector for heading h.
func (m *HexModel) Direction(h HexHeading) math32.Vector2 {
	return m.dirs[h%6]
}

// Start returns the origin and heading 0 (+X).
func (m *HexModel) Start() (math32.Vector2, HexHeading) {
	return math32.Vector2{}, 0
}

// Apply implements Model.
func (m *HexModel) Apply(pos math32.Vector2, heading HexHeading, turn HexTurn) (math32.Vector2, HexHeading, bool) {
	if turn.delta == 0 {
		return pos, heading, false
	}
	heading = heading.Add(int(turn.delta))
	return pos.Add(m.dirs[heading]), heading, true
}

// Compile-time interface checks.
var (
	_ Model[math32.Quat, AxisTurn, math32.Vector3] = (*AxisModel)(nil)
	_ Model[HexHeading, HexTurn, math32.Vector2]  = (*HexModel)(nil)
)
