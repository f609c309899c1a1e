// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render adapts arrowhead meshes to GPU and software renderers.
//
// # Key Principle
//
// The render package RECEIVES a device from the host application, it does
// NOT create one. A [Session] uploads the vertex and index buffers of a mesh
// exactly once and then hands out the same single indexed line-list draw
// for every frame.
//
// # Devices
//
//   - [HALDevice]: wraps a hal.Device and hal.Queue obtained from a
//     gpucontext.DeviceProvider
//   - [SoftwareDevice]: keeps buffers in memory; used for CPU-only hosts
//     and for tests
//
// # Buffers
//
// Vertices are encoded as six little-endian float32 values (position then
// color), giving [VertexStride] bytes per vertex. Indices are little-endian
// uint32. [VertexLayout] and [PrimitiveState] describe the same layout to
// the pipeline.
//
// # Usage
//
//	mesh := arrowhead.NewMesh(arrowhead.DefaultParams())
//	dev, err := render.NewHALDevice(provider)
//	if err != nil {
//	    return err
//	}
//	session, err := render.NewSession(dev, mesh)
//	if err != nil {
//	    return err
//	}
//	defer session.Close()
//
//	// Every frame, inside a render pass owned by the host:
//	cmd, err := session.Frame()
//	if err != nil {
//	    return err
//	}
//	err = dev.Record(pass, cmd)
//
// Software rasterization to PNG:
//
//	r := render.NewRaster(800, 800)
//	if err := r.Draw(mesh); err != nil {
//	    return err
//	}
//	err = r.SavePNG("arrowhead.png")
package render
