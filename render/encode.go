// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"cogentcore.org/core/math32"

	"github.com/gogpu/arrowhead"
)

const (
	// VertexStride is the encoded size of one vertex in bytes:
	// position (3 x float32) followed by color (3 x float32).
	VertexStride = 24

	// IndexStride is the encoded size of one index in bytes.
	IndexStride = 4

	// colorOffset is the byte offset of the color attribute.
	colorOffset = 12
)

// meshMagic starts every encoded mesh blob.
const meshMagic = "AHM1"

// meshHeaderSize is the magic plus vertex and index counts.
const meshHeaderSize = len(meshMagic) + 8

var (
	// ErrBufferSize is returned when a byte buffer is not a whole number of
	// vertices or indices.
	ErrBufferSize = errors.New("render: buffer size is not a multiple of the stride")

	// ErrBadMesh is returned by DecodeMesh for malformed blobs.
	ErrBadMesh = errors.New("render: malformed mesh blob")
)

// AppendVertices appends the little-endian encoding of vertices to dst.
func AppendVertices(dst []byte, vertices []arrowhead.Vertex) []byte {
	dst = growBytes(dst, len(vertices)*VertexStride)
	for _, v := range vertices {
		dst = appendFloat32(dst, v.Pos.X)
		dst = appendFloat32(dst, v.Pos.Y)
		dst = appendFloat32(dst, v.Pos.Z)
		dst = appendFloat32(dst, v.Color.R)
		dst = appendFloat32(dst, v.Color.G)
		dst = appendFloat32(dst, v.Color.B)
	}
	return dst
}

// EncodeVertices returns the vertex buffer contents for vertices.
func EncodeVertices(vertices []arrowhead.Vertex) []byte {
	return AppendVertices(nil, vertices)
}

// AppendIndices appends the little-endian encoding of indices to dst.
func AppendIndices(dst []byte, indices []uint32) []byte {
	dst = growBytes(dst, len(indices)*IndexStride)
	for _, i := range indices {
		dst = binary.LittleEndian.AppendUint32(dst, i)
	}
	return dst
}

// EncodeIndices returns the index buffer contents for indices.
func EncodeIndices(indices []uint32) []byte {
	return AppendIndices(nil, indices)
}

// DecodeVertices is the inverse of EncodeVertices.
func DecodeVertices(b []byte) ([]arrowhead.Vertex, error) {
	if len(b)%VertexStride != 0 {
		return nil, fmt.Errorf("%w: %d bytes, stride %d", ErrBufferSize, len(b), VertexStride)
	}
	out := make([]arrowhead.Vertex, len(b)/VertexStride)
	for i := range out {
		rec := b[i*VertexStride:]
		out[i] = arrowhead.Vertex{
			Pos: math32.Vec3(readFloat32(rec, 0), readFloat32(rec, 4), readFloat32(rec, 8)),
			Color: arrowhead.RGB(
				readFloat32(rec, colorOffset),
				readFloat32(rec, colorOffset+4),
				readFloat32(rec, colorOffset+8)),
		}
	}
	return out, nil
}

// DecodeIndices is the inverse of EncodeIndices.
func DecodeIndices(b []byte) ([]uint32, error) {
	if len(b)%IndexStride != 0 {
		return nil, fmt.Errorf("%w: %d bytes, stride %d", ErrBufferSize, len(b), IndexStride)
	}
	out := make([]uint32, len(b)/IndexStride)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(b[i*IndexStride:])
	}
	return out, nil
}

// EncodeMesh serializes a mesh as "AHM1", the vertex count and the index
// count (little-endian uint32), followed by the vertex and index buffers.
// Params are not stored.
func EncodeMesh(mesh *arrowhead.Mesh) []byte {
	n := meshHeaderSize + len(mesh.Vertices)*VertexStride + len(mesh.Indices)*IndexStride
	b := make([]byte, 0, n)
	b = append(b, meshMagic...)
	b = binary.LittleEndian.AppendUint32(b, uint32(len(mesh.Vertices)))
	b = binary.LittleEndian.AppendUint32(b, uint32(len(mesh.Indices)))
	b = AppendVertices(b, mesh.Vertices)
	return AppendIndices(b, mesh.Indices)
}

// DecodeMesh parses a blob written by EncodeMesh and attaches p. Blobs
// whose indices do not form line-list pairs over the stored vertices are
// rejected with ErrBadMesh.
func DecodeMesh(b []byte, p arrowhead.Params) (*arrowhead.Mesh, error) {
	if len(b) < meshHeaderSize || string(b[:len(meshMagic)]) != meshMagic {
		return nil, ErrBadMesh
	}
	nv := int(binary.LittleEndian.Uint32(b[4:]))
	ni := int(binary.LittleEndian.Uint32(b[8:]))
	body := b[meshHeaderSize:]
	if len(body) != nv*VertexStride+ni*IndexStride {
		return nil, fmt.Errorf("%w: %d body bytes for %d vertices and %d indices", ErrBadMesh, len(body), nv, ni)
	}
	if ni%2 != 0 {
		return nil, fmt.Errorf("%w: odd index count %d", ErrBadMesh, ni)
	}
	vertices, err := DecodeVertices(body[:nv*VertexStride])
	if err != nil {
		return nil, err
	}
	indices, err := DecodeIndices(body[nv*VertexStride:])
	if err != nil {
		return nil, err
	}
	for k, idx := range indices {
		if int(idx) >= nv {
			return nil, fmt.Errorf("%w: index %d at %d past %d vertices", ErrBadMesh, idx, k, nv)
		}
	}
	return &arrowhead.Mesh{Params: p, Vertices: vertices, Indices: indices}, nil
}

// alignedSize rounds n up to the 4-byte copy alignment required by
// buffer writes.
func alignedSize(n int) uint64 {
	return uint64((n + 3) &^ 3)
}

func appendFloat32(dst []byte, f float32) []byte {
	return binary.LittleEndian.AppendUint32(dst, math.Float32bits(f))
}

func readFloat32(b []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b[off:]))
}

func growBytes(b []byte, n int) []byte {
	if cap(b)-len(b) >= n {
		return b
	}
	out := make([]byte, len(b), len(b)+n)
	copy(out, b)
	return out
}
