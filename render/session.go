// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/arrowhead"
)

var (
	// ErrNilDevice is returned when a session is created without a device.
	ErrNilDevice = errors.New("render: nil device")

	// ErrEmptyMesh is returned when a mesh has no line segments to draw.
	ErrEmptyMesh = errors.New("render: mesh has no segments")

	// ErrSessionClosed is returned by Frame after Close.
	ErrSessionClosed = errors.New("render: session closed")
)

// SessionOption configures a Session.
type SessionOption func(*sessionConfig)

type sessionConfig struct {
	targetFormat gputypes.TextureFormat
	sampleCount  uint32
	label        string
}

func defaultSessionConfig() sessionConfig {
	return sessionConfig{
		targetFormat: gputypes.TextureFormatBGRA8Unorm,
		sampleCount:  1,
		label:        "arrowhead",
	}
}

// WithTargetFormat sets the color attachment format of the pipeline.
func WithTargetFormat(f gputypes.TextureFormat) SessionOption {
	return func(c *sessionConfig) {
		c.targetFormat = f
	}
}

// WithSampleCount sets the multisample count. Values below 1 are ignored.
func WithSampleCount(n uint32) SessionOption {
	return func(c *sessionConfig) {
		if n >= 1 {
			c.sampleCount = n
		}
	}
}

// WithLabel sets the debug label prefix of the session's resources.
func WithLabel(label string) SessionOption {
	return func(c *sessionConfig) {
		c.label = label
	}
}

// Session owns the GPU resources of one mesh.
//
// The vertex and index buffers are uploaded once in NewSession. Every call
// to Frame returns the same DrawCommand; nothing is regenerated or
// re-uploaded between frames.
type Session struct {
	mu     sync.Mutex
	device Device
	cmd    DrawCommand
	closed bool
	frames atomic.Uint64
}

// NewSession uploads mesh to dev and builds the line-list pipeline.
// On error every resource created so far is released.
func NewSession(dev Device, mesh *arrowhead.Mesh, opts ...SessionOption) (*Session, error) {
	if dev == nil {
		return nil, ErrNilDevice
	}
	if mesh == nil || mesh.SegmentCount() == 0 {
		return nil, ErrEmptyMesh
	}
	cfg := defaultSessionConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &Session{device: dev}
	var err error
	defer func() {
		if err != nil {
			s.release()
		}
	}()

	vertexData := EncodeVertices(mesh.Vertices)
	s.cmd.VertexBuffer, err = upload(dev, cfg.label+"_vertices", vertexData,
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return nil, err
	}

	indexData := EncodeIndices(mesh.Indices)
	s.cmd.IndexBuffer, err = upload(dev, cfg.label+"_indices", indexData,
		gputypes.BufferUsageIndex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return nil, err
	}

	s.cmd.Pipeline, err = dev.CreateLinePipeline(&PipelineDescriptor{
		Label:        cfg.label + "_pipeline",
		Vertex:       VertexLayout(),
		Primitive:    PrimitiveState(),
		TargetFormat: cfg.targetFormat,
		SampleCount:  cfg.sampleCount,
	})
	if err != nil {
		err = fmt.Errorf("render: create pipeline: %w", err)
		return nil, err
	}

	s.cmd.IndexFormat = IndexFormat
	s.cmd.IndexCount = uint32(len(mesh.Indices))
	s.cmd.VertexCount = uint32(len(mesh.Vertices))

	arrowhead.Logger().Debug("render: session started",
		"vertices", s.cmd.VertexCount,
		"indices", s.cmd.IndexCount,
		"vertex_bytes", len(vertexData),
		"index_bytes", len(indexData))
	return s, nil
}

// upload creates a buffer sized for data and writes data into it.
func upload(dev Device, label string, data []byte, usage gputypes.BufferUsage) (BufferID, error) {
	id, err := dev.CreateBuffer(label, alignedSize(len(data)), usage)
	if err != nil {
		return 0, fmt.Errorf("render: create %s: %w", label, err)
	}
	if err := dev.WriteBuffer(id, 0, data); err != nil {
		dev.DestroyBuffer(id)
		return 0, fmt.Errorf("render: write %s: %w", label, err)
	}
	return id, nil
}

// Frame returns the draw for the current frame.
func (s *Session) Frame() (DrawCommand, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return DrawCommand{}, ErrSessionClosed
	}
	s.frames.Add(1)
	return s.cmd, nil
}

// Frames returns how many frames have been served.
func (s *Session) Frames() uint64 {
	return s.frames.Load()
}

// Close releases the session's buffers and pipeline. It is safe to call
// more than once.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	s.release()
	return nil
}

func (s *Session) release() {
	if s.cmd.Pipeline != 0 {
		s.device.DestroyPipeline(s.cmd.Pipeline)
	}
	if s.cmd.IndexBuffer != 0 {
		s.device.DestroyBuffer(s.cmd.IndexBuffer)
	}
	if s.cmd.VertexBuffer != 0 {
		s.device.DestroyBuffer(s.cmd.VertexBuffer)
	}
}
