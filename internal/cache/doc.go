// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package cache stores encoded arrowhead meshes.
//
// Two tiers are provided:
//
// # Memory
//
// A thread-safe LRU bounded by entry count, kept in process.
//
//	m := cache.NewMemory(64)
//	m.Set(ctx, key, blob)
//	blob, err := m.Get(ctx, key)
//
// # Redis
//
// A shared tier backed by go-redis with an optional TTL and key prefix.
//
//	r := cache.NewRedis("localhost:6379", "", 0, cache.WithTTL(time.Hour))
//
// [Meshes] layers any number of tiers in front of the mesh builder. A hit
// in a slower tier is copied into the faster ones.
//
// Blobs use the render.EncodeMesh format and are keyed by [Key].
package cache
