// Package kv provides the persistent string key-value store that holds
// session tokens.
package kv

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned by Get when key has no value.
var ErrNotFound = errors.New("kv: key not found")

// Store is an opaque get/set/remove store of string values.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Purger is implemented by stores that can drop expired values in bulk.
type Purger interface {
	PurgeExpired(ctx context.Context) (int, error)
}

// Memory is a process-local Store. Its values never expire; they go away
// with the process.
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *Memory) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Prefixed namespaces every key of an underlying store.
type Prefixed struct {
	Store  Store
	Prefix string
}

func (p Prefixed) Get(ctx context.Context, key string) (string, error) {
	return p.Store.Get(ctx, p.Prefix+key)
}

func (p Prefixed) Set(ctx context.Context, key, value string) error {
	return p.Store.Set(ctx, p.Prefix+key, value)
}

func (p Prefixed) Remove(ctx context.Context, key string) error {
	return p.Store.Remove(ctx, p.Prefix+key)
}
