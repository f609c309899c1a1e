// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package cache

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/gogpu/arrowhead"
	"github.com/gogpu/arrowhead/render"
)

// ErrCacheMiss is returned by Store.Get when the key is absent.
var ErrCacheMiss = errors.New("cache: miss")

// Store is one cache tier holding encoded meshes.
type Store interface {
	// Name identifies the tier in logs and metrics.
	Name() string

	// Get returns the blob stored under key, or ErrCacheMiss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a blob under key.
	Set(ctx context.Context, key string, value []byte) error
}

// Deleter is implemented by tiers that can drop a single key.
type Deleter interface {
	Delete(ctx context.Context, key string) error
}

// Sized is implemented by tiers that track their occupancy.
type Sized interface {
	// Len returns the number of entries held.
	Len() int

	// Evictions returns how many entries were dropped to make room.
	Evictions() uint64
}

// SourceBuild is the source reported when a mesh was generated rather than
// found in a tier.
const SourceBuild = "build"

// Key returns the cache key of the mesh described by p.
func Key(p arrowhead.Params) string {
	color := "gradient"
	if !p.Gradient {
		color = fmt.Sprintf("%g,%g,%g", p.Color.R, p.Color.G, p.Color.B)
	}
	return fmt.Sprintf("v1/%s/d%d/s%g/%s", p.Variant, p.Depth, p.Scale, color)
}

// Meshes serves encoded meshes from a list of tiers, fastest first, and
// builds them on a miss. Concurrent misses for the same key share a single
// build.
type Meshes struct {
	tiers []Store
	opts  []arrowhead.BuildOption
	group singleflight.Group

	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewMeshes layers tiers in front of the mesh builder. opts are passed to
// arrowhead.NewMesh on every build.
func NewMeshes(tiers []Store, opts ...arrowhead.BuildOption) *Meshes {
	return &Meshes{tiers: tiers, opts: opts}
}

// Blob returns the encoded mesh for p and the name of the tier it came
// from, or SourceBuild. Tier errors other than a miss are logged and
// treated as a miss.
func (m *Meshes) Blob(ctx context.Context, p arrowhead.Params) ([]byte, string, error) {
	if err := p.Validate(); err != nil {
		return nil, "", err
	}
	key := Key(p)
	for i, tier := range m.tiers {
		blob, err := tier.Get(ctx, key)
		if err == nil {
			m.hits.Add(1)
			m.fill(ctx, m.tiers[:i], key, blob)
			return blob, tier.Name(), nil
		}
		if !errors.Is(err, ErrCacheMiss) {
			arrowhead.Logger().Warn("cache: tier get failed", "tier", tier.Name(), "key", key, "error", err)
		}
	}

	m.misses.Add(1)
	v, err, _ := m.group.Do(key, func() (any, error) {
		blob := render.EncodeMesh(arrowhead.NewMesh(p, m.opts...))
		m.fill(context.WithoutCancel(ctx), m.tiers, key, blob)
		return blob, nil
	})
	if err != nil {
		return nil, "", err
	}
	return v.([]byte), SourceBuild, nil
}

// Mesh is Blob followed by render.DecodeMesh. A blob that fails to decode
// is deleted from every tier implementing Deleter, so the next request
// rebuilds it.
func (m *Meshes) Mesh(ctx context.Context, p arrowhead.Params) (*arrowhead.Mesh, string, error) {
	blob, source, err := m.Blob(ctx, p)
	if err != nil {
		return nil, "", err
	}
	mesh, err := render.DecodeMesh(blob, p)
	if err != nil {
		m.drop(ctx, Key(p))
		return nil, "", fmt.Errorf("cache: %s returned a bad blob: %w", source, err)
	}
	return mesh, source, nil
}

func (m *Meshes) drop(ctx context.Context, key string) {
	for _, tier := range m.tiers {
		d, ok := tier.(Deleter)
		if !ok {
			continue
		}
		if err := d.Delete(ctx, key); err != nil {
			arrowhead.Logger().Warn("cache: tier delete failed", "tier", tier.Name(), "key", key, "error", err)
		}
	}
}

func (m *Meshes) fill(ctx context.Context, tiers []Store, key string, blob []byte) {
	for _, tier := range tiers {
		if err := tier.Set(ctx, key, blob); err != nil {
			arrowhead.Logger().Warn("cache: tier set failed", "tier", tier.Name(), "key", key, "error", err)
		}
	}
}

// Stats returns the number of tier hits and builds.
func (m *Meshes) Stats() (hits, misses uint64) {
	return m.hits.Load(), m.misses.Load()
}

// Tiers returns the tiers, fastest first.
func (m *Meshes) Tiers() []Store {
	return slices.Clone(m.tiers)
}

var (
	_ Store   = (*Memory)(nil)
	_ Store   = (*Redis)(nil)
	_ Deleter = (*Memory)(nil)
	_ Deleter = (*Redis)(nil)
	_ Sized   = (*Memory)(nil)
)
