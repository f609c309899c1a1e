// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "github.com/gogpu/gputypes"

// IndexFormat is the format of the encoded index buffer.
const IndexFormat = gputypes.IndexFormatUint32

// Shader locations of the vertex attributes.
const (
	PositionLocation = 0
	ColorLocation    = 1
)

// VertexLayout describes the encoded vertex buffer: float32x3 position at
// location 0 and float32x3 color at location 1.
func VertexLayout() gputypes.VertexBufferLayout {
	return gputypes.VertexBufferLayout{
		ArrayStride: VertexStride,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes: []gputypes.VertexAttribute{
			{
				Format:         gputypes.VertexFormatFloat32x3,
				Offset:         0,
				ShaderLocation: PositionLocation,
			},
			{
				Format:         gputypes.VertexFormatFloat32x3,
				Offset:         colorOffset,
				ShaderLocation: ColorLocation,
			},
		},
	}
}

// PrimitiveState returns a line-list topology with culling disabled.
func PrimitiveState() gputypes.PrimitiveState {
	return gputypes.PrimitiveState{
		Topology: gputypes.PrimitiveTopologyLineList,
		CullMode: gputypes.CullModeNone,
	}
}
