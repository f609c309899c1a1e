// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package arrowhead

import (
	"iter"

	"cogentcore.org/core/math32"
)

// pending is an expanded frame whose children have not all been visited.
// kids is in push order; the next child to visit is kids[left-1].
type pending[T comparable] struct {
	kids [3]Frame[T]
	left int
}

// State is the explicit state machine behind curve generation: the work
// stack, the current position and the current heading. Nothing else is
// needed to resume production.
//
// A State is single-use and not safe for concurrent use. To generate the
// same curve again, build a new State with the same depth.
type State[H any, T comparable, P any] struct {
	model Model[H, T, P]
	rules *Rules[T]

	stack   []pending[T]
	pos     P
	heading H
	started bool
}

// NewState returns a generator for a curve of the given depth.
//
// Depth is a precondition, not a runtime check: output grows as 3^depth, so
// callers must bound it. Negative depths are treated as 0. Depth 0 is the
// unexpanded axiom and produces only the start position.
func NewState[H any, T comparable, P any](model Model[H, T, P], rules *Rules[T], depth int) *State[H, T, P] {
	s := &State[H, T, P]{model: model, rules: rules}
	s.pos, s.heading = model.Start()
	if depth > 0 {
		s.stack = make([]pending[T], 1, depth)
		s.stack[0] = pending[T]{kids: [3]Frame[T]{rules.RootFrame(depth)}, left: 1}
	}
	return s
}

// Position returns the current position.
func (s *State[H, T, P]) Position() P { return s.pos }

// Heading returns the current heading.
func (s *State[H, T, P]) Heading() H { return s.heading }

// StackHeight returns the number of pending expansions on the work stack.
// It never exceeds the depth the State was created with.
func (s *State[H, T, P]) StackHeight() int { return len(s.stack) }

// Done reports whether the generator is terminal.
func (s *State[H, T, P]) Done() bool { return s.started && len(s.stack) == 0 }

// Step produces the next position. The first call returns the start
// position; each later call consumes frames until one of them moves the
// pen and returns the new position. The boolean is false once the curve is
// exhausted.
func (s *State[H, T, P]) Step() (P, bool) {
	if !s.started {
		s.started = true
		return s.pos, true
	}
	for {
		f, ok := s.pop()
		if !ok {
			var zero P
			return zero, false
		}
		if f.Depth > 0 {
			s.stack = append(s.stack, pending[T]{kids: s.rules.Expand(f), left: 3})
		}
		var moved bool
		s.pos, s.heading, moved = s.model.Apply(s.pos, s.heading, f.Turn)
		if moved {
			return s.pos, true
		}
	}
}

// pop returns the next frame in traversal order. An expansion is removed
// from the stack as soon as its last child is handed out, which keeps the
// stack at one entry per open depth level.
func (s *State[H, T, P]) pop() (Frame[T], bool) {
	n := len(s.stack)
	if n == 0 {
		return Frame[T]{}, false
	}
	top := &s.stack[n-1]
	top.left--
	f := top.kids[top.left]
	if top.left == 0 {
		s.stack = s.stack[:n-1]
	}
	return f, true
}

// All returns the remaining positions as a single-pass sequence.
func (s *State[H, T, P]) All() iter.Seq[P] {
	return func(yield func(P) bool) {
		for {
			p, ok := s.Step()
			if !ok || !yield(p) {
				return
			}
		}
	}
}

// Generate returns the positions of a curve of the given depth as a lazy,
// finite sequence. Each call to the returned sequence's iteration starts
// from scratch, so the same sequence can be ranged over more than once.
func Generate[H any, T comparable, P any](model Model[H, T, P], rules *Rules[T], depth int) iter.Seq[P] {
	return func(yield func(P) bool) {
		NewState(model, rules, depth).All()(yield)
	}
}

// PointCount returns the number of positions a curve of the given depth
// produces: 1 for depth 0, otherwise 3^depth + 1.
func PointCount(depth int) int {
	if depth <= 0 {
		return 1
	}
	n := 1
	for range depth {
		n *= 3
	}
	return n + 1
}

// Curve3D and Curve2D are the generator states of the two variants.
type (
	Curve3D = State[math32.Quat, AxisTurn, math32.Vector3]
	Curve2D = State[HexHeading, HexTurn, math32.Vector2]
)

// NewCurve3D returns the 3D generator using the default rotation angle.
func NewCurve3D(depth int) *Curve3D {
	return NewState[math32.Quat, AxisTurn, math32.Vector3](defaultAxisModel, &AxisRules, depth)
}

// NewCurve2D returns the planar generator.
func NewCurve2D(depth int) *Curve2D {
	return NewState[HexHeading, HexTurn, math32.Vector2](defaultHexModel, &HexRules, depth)
}

// Generate3D returns the positions of the 3D curve using the default
// rotation angle.
func Generate3D(depth int) iter.Seq[math32.Vector3] {
	return Generate[math32.Quat, AxisTurn, math32.Vector3](defaultAxisModel, &AxisRules, depth)
}

// Generate2D returns the positions of the planar curve.
func Generate2D(depth int) iter.Seq[math32.Vector2] {
	return Generate[HexHeading, HexTurn, math32.Vector2](defaultHexModel, &HexRules, depth)
}

var (
	defaultAxisModel = NewAxisModel(DefaultAxisAngle)
	defaultHexModel  = NewHexModel()
)
