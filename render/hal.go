// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// ErrNoHAL is returned when a device provider does not expose HAL types.
var ErrNoHAL = errors.New("render: provider does not expose HAL types")

// HALDevice implements Device on top of a wgpu HAL device and queue.
//
// The device and queue are borrowed from the host and are not destroyed by
// the HALDevice; only resources it created are released.
type HALDevice struct {
	mu     sync.Mutex
	device hal.Device
	queue  hal.Queue

	nextID    uint32
	buffers   map[BufferID]hal.Buffer
	pipelines map[PipelineID]*halPipeline
}

// halPipeline groups the objects behind one PipelineID.
type halPipeline struct {
	shader   hal.ShaderModule
	layout   hal.PipelineLayout
	pipeline hal.RenderPipeline
}

// NewHALDevice extracts the HAL device and queue from a host provider.
// The provider must implement HalDevice() any and HalQueue() any returning
// hal.Device and hal.Queue.
func NewHALDevice(provider DeviceHandle) (*HALDevice, error) {
	if provider == nil {
		return nil, ErrNilDevice
	}
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNoHAL
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoHAL)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNoHAL)
	}
	return NewHALDeviceFrom(device, queue)
}

// NewHALDeviceFrom wraps an existing HAL device and queue.
func NewHALDeviceFrom(device hal.Device, queue hal.Queue) (*HALDevice, error) {
	if device == nil || queue == nil {
		return nil, ErrNilDevice
	}
	return &HALDevice{
		device:    device,
		queue:     queue,
		buffers:   make(map[BufferID]hal.Buffer),
		pipelines: make(map[PipelineID]*halPipeline),
	}, nil
}

// CreateBuffer implements Device.
func (d *HALDevice) CreateBuffer(label string, size uint64, usage gputypes.BufferUsage) (BufferID, error) {
	buf, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  size,
		Usage: usage,
	})
	if err != nil {
		return 0, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.nextID++
	id := BufferID(d.nextID)
	d.buffers[id] = buf
	return id, nil
}

// WriteBuffer implements Device.
func (d *HALDevice) WriteBuffer(id BufferID, offset uint64, data []byte) error {
	d.mu.Lock()
	buf, ok := d.buffers[id]
	d.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: buffer %d", ErrUnknownResource, id)
	}
	d.queue.WriteBuffer(buf, offset, data)
	return nil
}

// DestroyBuffer implements Device.
func (d *HALDevice) DestroyBuffer(id BufferID) {
	d.mu.Lock()
	buf, ok := d.buffers[id]
	delete(d.buffers, id)
	d.mu.Unlock()
	if ok {
		d.device.DestroyBuffer(buf)
	}
}

// CreateLinePipeline implements Device. The line shader is compiled to
// SPIR-V with naga.
func (d *HALDevice) CreateLinePipeline(desc *PipelineDescriptor) (PipelineID, error) {
	if desc == nil {
		return 0, fmt.Errorf("render: nil pipeline descriptor")
	}
	spirv, err := LineShaderSPIRV()
	if err != nil {
		return 0, err
	}

	p := &halPipeline{}
	ok := false
	defer func() {
		if !ok {
			d.destroyPipeline(p)
		}
	}()

	p.shader, err = d.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  desc.Label + "_shader",
		Source: hal.ShaderSource{SPIRV: spirv},
	})
	if err != nil {
		return 0, fmt.Errorf("create shader module: %w", err)
	}

	p.layout, err = d.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label: desc.Label + "_layout",
	})
	if err != nil {
		return 0, fmt.Errorf("create pipeline layout: %w", err)
	}

	samples := desc.SampleCount
	if samples == 0 {
		samples = 1
	}
	p.pipeline, err = d.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  desc.Label,
		Layout: p.layout,
		Vertex: hal.VertexState{
			Module:     p.shader,
			EntryPoint: vertexEntryPoint,
			Buffers:    []gputypes.VertexBufferLayout{desc.Vertex},
		},
		Fragment: &hal.FragmentState{
			Module:     p.shader,
			EntryPoint: fragmentEntryPoint,
			Targets: []gputypes.ColorTargetState{
				{
					Format:    desc.TargetFormat,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: desc.Primitive,
		Multisample: gputypes.MultisampleState{
			Count: samples,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return 0, fmt.Errorf("create render pipeline: %w", err)
	}

	ok = true
	d.mu.Lock()
	defer d.mu.Unlock()
	d.nextID++
	id := PipelineID(d.nextID)
	d.pipelines[id] = p
	return id, nil
}

// DestroyPipeline implements Device.
func (d *HALDevice) DestroyPipeline(id PipelineID) {
	d.mu.Lock()
	p, ok := d.pipelines[id]
	delete(d.pipelines, id)
	d.mu.Unlock()
	if ok {
		d.destroyPipeline(p)
	}
}

// destroyPipeline releases pipeline objects in reverse creation order.
func (d *HALDevice) destroyPipeline(p *halPipeline) {
	if p.pipeline != nil {
		d.device.DestroyRenderPipeline(p.pipeline)
	}
	if p.layout != nil {
		d.device.DestroyPipelineLayout(p.layout)
	}
	if p.shader != nil {
		d.device.DestroyShaderModule(p.shader)
	}
}

// Record binds the session's resources and issues its indexed draw into an
// open render pass owned by the caller.
func (d *HALDevice) Record(rp hal.RenderPassEncoder, cmd DrawCommand) error {
	d.mu.Lock()
	p, okP := d.pipelines[cmd.Pipeline]
	vb, okV := d.buffers[cmd.VertexBuffer]
	ib, okI := d.buffers[cmd.IndexBuffer]
	d.mu.Unlock()
	if !okP || !okV || !okI {
		return fmt.Errorf("%w: draw command %+v", ErrUnknownResource, cmd)
	}
	rp.SetPipeline(p.pipeline)
	rp.SetVertexBuffer(0, vb, 0)
	rp.SetIndexBuffer(ib, cmd.IndexFormat, 0)
	rp.DrawIndexed(cmd.IndexCount, 1, 0, 0, 0)
	return nil
}

var _ Device = (*HALDevice)(nil)
