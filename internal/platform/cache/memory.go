// Copyright (c) 2026 GYCODES. All rights reserved.
// Author: dev@gycodes.io

package cache

import (
	"context"
	"sync"
	"time"
)

// memoryEntry is a stored value plus its expiry deadline.
type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// Memory is an in-process [Cache] backed by a mutex-guarded map.
//
// # Eviction
//
// Eviction is lazy: an expired entry is removed the next time it is read.
// There is no background sweeper, so memory usage is bounded by the set of
// keys touched within one TTL window, which for this workload (one entry per
// viewed manga or chapter) stays small.
type Memory struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
}

// NewMemory creates an empty in-process cache whose entries live for ttl.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
	}
}

// Get implements [Cache].
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, found := m.entries[key]
	if !found {
		return nil, false, nil
	}

	if time.Now().After(entry.expiresAt) {
		delete(m.entries, key)
		return nil, false, nil
	}

	return entry.value, true, nil
}

// Set implements [Cache].
func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = memoryEntry{
		value:     value,
		expiresAt: time.Now().Add(m.ttl),
	}
	return nil
}

// Delete implements [Cache].
func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, key)
	return nil
}
