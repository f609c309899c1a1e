// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package arrowhead

import "fmt"

// Symbol is a non-terminal of the rewriting grammar, conventionally named
// after an axis.
type Symbol uint8

// Grammar symbols.
const (
	SymbolX Symbol = iota
	SymbolY
	SymbolZ

	symbolCount
)

// String returns the axis letter of the symbol.
func (s Symbol) String() string {
	switch s {
	case SymbolX:
		return "x"
	case SymbolY:
		return "y"
	case SymbolZ:
		return "z"
	default:
		return fmt.Sprintf("Symbol(%d)", uint8(s))
	}
}

// Frame is one pending unit of generator work: the remaining expansion
// depth, the symbol to expand and the turn applied when the frame is
// entered.
type Frame[T comparable] struct {
	Depth  int
	Symbol Symbol
	Turn   T
}

// Child is one entry of a rule: the symbol and turn of a child frame.
type Child[T comparable] struct {
	Symbol Symbol
	Turn   T
}

// Rules is a fixed rewriting grammar. Each symbol expands into exactly
// three children listed in push order: the last child is visited first.
type Rules[T comparable] struct {
	// Root is the axiom. Its Depth field is ignored; the generator
	// substitutes the requested depth.
	Root Child[T]

	// Table holds the three children of each symbol, indexed by Symbol.
	Table [symbolCount][3]Child[T]
}

// Expand returns the children of f in push order, each one level shallower
// than f. Expand must only be called for frames with Depth > 0.
func (r *Rules[T]) Expand(f Frame[T]) [3]Frame[T] {
	row := &r.Table[f.Symbol]
	d := f.Depth - 1
	return [3]Frame[T]{
		{Depth: d, Symbol: row[0].Symbol, Turn: row[0].Turn},
		{Depth: d, Symbol: row[1].Symbol, Turn: row[1].Turn},
		{Depth: d, Symbol: row[2].Symbol, Turn: row[2].Turn},
	}
}

// RootFrame returns the axiom frame for a curve of the given depth.
func (r *Rules[T]) RootFrame(depth int) Frame[T] {
	return Frame[T]{Depth: depth, Symbol: r.Root.Symbol, Turn: r.Root.Turn}
}

// AxisRules is the grammar of the 3D variant. Every symbol uses its own
// rotation: x turns by A, y by B and z by C.
var AxisRules = Rules[AxisTurn]{
	Root: Child[AxisTurn]{SymbolY, AxisA},
	Table: [symbolCount][3]Child[AxisTurn]{
		SymbolX: {{SymbolY, AxisA}, {SymbolZ, AxisA}, {SymbolY, AxisNone}},
		SymbolY: {{SymbolZ, AxisB}, {SymbolX, AxisB}, {SymbolZ, AxisNone}},
		SymbolZ: {{SymbolX, AxisC}, {SymbolY, AxisC}, {SymbolX, AxisNone}},
	},
}

// HexRules is the grammar of the planar variant. x and z are the
// left-handed symbols and y the right-handed one; every expansion keeps the
// curve inside the equilateral triangle on its start and end points, whose
// distance doubles with each level.
var HexRules = Rules[HexTurn]{
	Root: Child[HexTurn]{SymbolY, TurnLeft},
	Table: [symbolCount][3]Child[HexTurn]{
		SymbolX: {{SymbolY, TurnLeft}, {SymbolZ, TurnLeft}, {SymbolY, TurnNone}},
		SymbolY: {{SymbolZ, TurnRight}, {SymbolY, TurnRight}, {SymbolZ, TurnNone}},
		SymbolZ: {{SymbolY, TurnLeft}, {SymbolX, TurnLeft}, {SymbolY, TurnNone}},
	},
}
