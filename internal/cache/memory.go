// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package cache

import (
	"context"
	"sync"
)

// memEntry is a node in the recency list. The head is the most recently
// used entry, the tail the least recently used.
type memEntry struct {
	key   string
	value []byte
	prev  *memEntry
	next  *memEntry
}

// Memory is an in-process LRU store bounded by entry count.
//
// Memory is safe for concurrent use and must not be copied after creation.
type Memory struct {
	mu      sync.Mutex
	entries map[string]*memEntry
	head    *memEntry
	tail    *memEntry
	limit   int

	evictions uint64
}

// NewMemory creates a store holding at most limit entries. A limit below 1
// is treated as 1.
func NewMemory(limit int) *Memory {
	return &Memory{
		entries: make(map[string]*memEntry),
		limit:   max(limit, 1),
	}
}

// Get implements Store.
func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return nil, ErrCacheMiss
	}
	m.moveToFront(e)
	return e.value, nil
}

// Set implements Store. The least recently used entry is evicted when the
// store is full.
func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e, ok := m.entries[key]; ok {
		e.value = value
		m.moveToFront(e)
		return nil
	}
	e := &memEntry{key: key, value: value}
	m.entries[key] = e
	m.pushFront(e)
	for len(m.entries) > m.limit {
		oldest := m.tail
		m.unlink(oldest)
		delete(m.entries, oldest.key)
		m.evictions++
	}
	return nil
}

// Delete implements Deleter. Deleting an absent key is not an error.
func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e, ok := m.entries[key]; ok {
		m.unlink(e)
		delete(m.entries, key)
	}
	return nil
}

// Len implements Sized.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Evictions implements Sized. Deletes are not counted.
func (m *Memory) Evictions() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.evictions
}

// Name implements Store.
func (m *Memory) Name() string { return "memory" }

// Caller must hold m.mu.
func (m *Memory) pushFront(e *memEntry) {
	e.prev = nil
	e.next = m.head
	if m.head != nil {
		m.head.prev = e
	}
	m.head = e
	if m.tail == nil {
		m.tail = e
	}
}

// Caller must hold m.mu.
func (m *Memory) moveToFront(e *memEntry) {
	if e == m.head {
		return
	}
	m.unlink(e)
	m.pushFront(e)
}

// unlink removes e from the list without touching the map.
// Caller must hold m.mu.
func (m *Memory) unlink(e *memEntry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		m.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		m.tail = e.prev
	}
	e.prev, e.next = nil, nil
}
