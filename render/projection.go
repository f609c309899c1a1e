// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"fmt"
	"strings"

	"cogentcore.org/core/math32"
)

// Projection maps mesh positions onto the raster plane.
type Projection uint8

const (
	// ProjectionFront drops Z and looks down the -Z axis.
	ProjectionFront Projection = iota

	// ProjectionTop drops Y and looks down the -Y axis.
	ProjectionTop

	// ProjectionIsometric is a 30° isometric view.
	ProjectionIsometric
)

// ErrUnknownProjection is returned by ParseProjection.
var ErrUnknownProjection = errors.New("render: unknown projection")

var projectionNames = [...]string{"front", "top", "iso"}

// String returns the projection name.
func (p Projection) String() string {
	if int(p) < len(projectionNames) {
		return projectionNames[p]
	}
	return fmt.Sprintf("Projection(%d)", uint8(p))
}

// ParseProjection accepts "front", "top" and "iso" in any case.
func ParseProjection(s string) (Projection, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range projectionNames {
		if n == name {
			return Projection(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownProjection, s)
}

var (
	isoCos = math32.Cos(math32.Pi / 6)
	isoSin = math32.Sin(math32.Pi / 6)
)

// Project returns the plane coordinates of p with +Y pointing up.
func (p Projection) Project(v math32.Vector3) math32.Vector2 {
	switch p {
	case ProjectionTop:
		return math32.Vec2(v.X, -v.Z)
	case ProjectionIsometric:
		return math32.Vec2((v.X-v.Z)*isoCos, v.Y+(v.X+v.Z)*isoSin)
	default:
		return math32.Vec2(v.X, v.Y)
	}
}
