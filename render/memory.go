// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"sync"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/arrowhead"
)

// SoftwareDevice is a Device that keeps buffers in host memory.
//
// It validates writes against buffer sizes and records pipeline
// descriptors, so a Session can be exercised without a GPU. Resolve turns
// a DrawCommand back into vertices and indices.
type SoftwareDevice struct {
	mu        sync.Mutex
	nextID    uint32
	buffers   map[BufferID]*memBuffer
	pipelines map[PipelineID]PipelineDescriptor
	writes    int
}

type memBuffer struct {
	label string
	usage gputypes.BufferUsage
	data  []byte
}

// NewSoftwareDevice returns an empty in-memory device.
func NewSoftwareDevice() *SoftwareDevice {
	return &SoftwareDevice{
		buffers:   make(map[BufferID]*memBuffer),
		pipelines: make(map[PipelineID]PipelineDescriptor),
	}
}

func (d *SoftwareDevice) allocID() uint32 {
	d.nextID++
	return d.nextID
}

// CreateBuffer implements Device.
func (d *SoftwareDevice) CreateBuffer(label string, size uint64, usage gputypes.BufferUsage) (BufferID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	id := BufferID(d.allocID())
	d.buffers[id] = &memBuffer{label: label, usage: usage, data: make([]byte, size)}
	return id, nil
}

// WriteBuffer implements Device.
func (d *SoftwareDevice) WriteBuffer(id BufferID, offset uint64, data []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	b, ok := d.buffers[id]
	if !ok {
		return fmt.Errorf("%w: buffer %d", ErrUnknownResource, id)
	}
	if offset+uint64(len(data)) > uint64(len(b.data)) {
		return fmt.Errorf("render: write of %d bytes at %d overflows %q (%d bytes)",
			len(data), offset, b.label, len(b.data))
	}
	copy(b.data[offset:], data)
	d.writes++
	return nil
}

// DestroyBuffer implements Device.
func (d *SoftwareDevice) DestroyBuffer(id BufferID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.buffers, id)
}

// CreateLinePipeline implements Device.
func (d *SoftwareDevice) CreateLinePipeline(desc *PipelineDescriptor) (PipelineID, error) {
	if desc == nil {
		return 0, fmt.Errorf("render: nil pipeline descriptor")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	id := PipelineID(d.allocID())
	d.pipelines[id] = *desc
	return id, nil
}

// DestroyPipeline implements Device.
func (d *SoftwareDevice) DestroyPipeline(id PipelineID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.pipelines, id)
}

// Buffer returns a copy of a buffer's contents.
func (d *SoftwareDevice) Buffer(id BufferID) ([]byte, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	b, ok := d.buffers[id]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), b.data...), true
}

// Pipeline returns the descriptor a pipeline was created with.
func (d *SoftwareDevice) Pipeline(id PipelineID) (PipelineDescriptor, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	p, ok := d.pipelines[id]
	return p, ok
}

// Live returns the number of live buffers and pipelines.
func (d *SoftwareDevice) Live() (buffers, pipelines int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.buffers), len(d.pipelines)
}

// Writes returns the number of successful buffer writes.
func (d *SoftwareDevice) Writes() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.writes
}

// Resolve decodes the buffers referenced by cmd.
func (d *SoftwareDevice) Resolve(cmd DrawCommand) ([]arrowhead.Vertex, []uint32, error) {
	vb, ok := d.Buffer(cmd.VertexBuffer)
	if !ok {
		return nil, nil, fmt.Errorf("%w: vertex buffer %d", ErrUnknownResource, cmd.VertexBuffer)
	}
	ib, ok := d.Buffer(cmd.IndexBuffer)
	if !ok {
		return nil, nil, fmt.Errorf("%w: index buffer %d", ErrUnknownResource, cmd.IndexBuffer)
	}
	vertices, err := DecodeVertices(vb[:int(cmd.VertexCount)*VertexStride])
	if err != nil {
		return nil, nil, err
	}
	indices, err := DecodeIndices(ib[:int(cmd.IndexCount)*IndexStride])
	if err != nil {
		return nil, nil, err
	}
	return vertices, indices, nil
}

var _ Device = (*SoftwareDevice)(nil)
