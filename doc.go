// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package arrowhead generates polyline approximations of a Sierpinski
// arrowhead family curve and builds line-list vertex/index buffers for them.
//
// # Overview
//
// A curve is described by a fixed rewriting grammar ([Rules]) over three
// symbols and a heading model ([Model]) that turns symbolic turn
// instructions into displacements. Two variants are provided:
//
//   - 3D: the heading is a quaternion right-composed with one of three fixed
//     rotations ([AxisModel], [AxisRules]).
//   - 2D: the heading indexes a table of six unit directions 60° apart
//     ([HexModel], [HexRules]).
//
// # Quick Start
//
//	import "github.com/gogpu/arrowhead"
//
//	// Lazy sequence of positions
//	for p := range arrowhead.Generate2D(5) {
//	    fmt.Println(p.X, p.Y)
//	}
//
//	// Vertex and index buffers ready for upload
//	mesh := arrowhead.NewMesh(arrowhead.DefaultParams())
//	fmt.Println(mesh.VertexCount(), mesh.IndexCount())
//
// # Generation
//
// The natural recursive definition is replaced by an explicit state machine
// ([State]): a LIFO stack of pending expansions plus the current position
// and heading. Each [State.Step] hands out frames in traversal order and
// returns the next position. The stack never holds more entries than the
// requested depth, and generation never recurses.
//
// A curve of depth d has 3^d + 1 positions for d >= 1. Depth 0 is the
// unexpanded axiom and yields only the origin. Output is bit-identical
// across runs for the same inputs.
//
// Depth is a precondition: output grows as 3^d, so callers bound it. No
// limit is enforced here.
//
// # Buffers
//
// [Build] scales positions, colors them with a pluggable [ColorRule] and
// returns a line-list index buffer where index k is (k+1)/2, so consecutive
// index pairs draw consecutive polyline segments. Rendering adapters live in
// the render sub-package.
package arrowhead
