// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// DeviceHandle provides GPU device access from the host application.
//
// DeviceHandle is an alias for gpucontext.DeviceProvider. The host owns the
// device; [NewHALDevice] only borrows it.
type DeviceHandle = gpucontext.DeviceProvider

// BufferID identifies a buffer created by a Device.
type BufferID uint32

// PipelineID identifies a render pipeline created by a Device.
type PipelineID uint32

// ErrUnknownResource is returned when an ID does not name a live resource.
var ErrUnknownResource = errors.New("render: unknown resource")

// PipelineDescriptor describes the line-list pipeline of a session.
type PipelineDescriptor struct {
	// Label is an optional debug label.
	Label string

	// Vertex is the layout of the single vertex buffer.
	Vertex gputypes.VertexBufferLayout

	// Primitive is the primitive assembly state.
	Primitive gputypes.PrimitiveState

	// TargetFormat is the color attachment format.
	TargetFormat gputypes.TextureFormat

	// SampleCount is the multisample count. Zero means 1.
	SampleCount uint32
}

// Device is the narrow slice of a GPU device that a Session needs.
//
// Resource lifecycle:
//   - Resources are created via Create* methods
//   - Resources must be explicitly destroyed via Destroy* methods
//   - IDs are never zero and become invalid after destruction
//
// Implementations must be safe for concurrent use.
type Device interface {
	// CreateBuffer allocates a buffer of size bytes.
	CreateBuffer(label string, size uint64, usage gputypes.BufferUsage) (BufferID, error)

	// WriteBuffer copies data into the buffer at offset.
	WriteBuffer(id BufferID, offset uint64, data []byte) error

	// DestroyBuffer releases a buffer. Unknown IDs are ignored.
	DestroyBuffer(id BufferID)

	// CreateLinePipeline builds a render pipeline for the line shader.
	CreateLinePipeline(desc *PipelineDescriptor) (PipelineID, error)

	// DestroyPipeline releases a pipeline. Unknown IDs are ignored.
	DestroyPipeline(id PipelineID)
}

// DrawCommand is a single indexed draw of a session's mesh.
type DrawCommand struct {
	Pipeline     PipelineID
	VertexBuffer BufferID
	IndexBuffer  BufferID
	IndexFormat  gputypes.IndexFormat

	// IndexCount is the number of indices to draw.
	IndexCount uint32

	// VertexCount is the number of vertices in the vertex buffer.
	VertexCount uint32
}

// Segments returns the number of line segments the command draws.
func (c DrawCommand) Segments() int {
	return int(c.IndexCount / 2)
}
