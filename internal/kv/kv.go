// Package kv defines the durable key-value store the journal is persisted in.
// Each key holds one whole document; writers always replace the full value.
package kv

import (
	"errors"
	"sync"
)

// ErrUnavailable is returned by stores that have no persistence backend.
var ErrUnavailable = errors.New("storage backend unavailable")

// Store is a durable string key-value store
type Store interface {
	// Get returns the value at key and whether it was present.
	Get(key string) (string, bool, error)
	Set(key, value string) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error
	Close() error
}

// Memory is an in-memory Store
type Memory struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

var _ Store = (*Memory)(nil)
var _ Store = Unavailable{}

func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.values[key]
	return v, ok, nil
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = value
	return nil
}

func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.values, key)
	return nil
}

func (m *Memory) Close() error { return nil }

// Unavailable is a Store without a backend. Every call fails with ErrUnavailable.
type Unavailable struct{}

func (Unavailable) Get(string) (string, bool, error) { return "", false, ErrUnavailable }
func (Unavailable) Set(string, string) error         { return ErrUnavailable }
func (Unavailable) Delete(string) error              { return ErrUnavailable }
func (Unavailable) Close() error                     { return nil }

// Backend is a Store with a lifecycle, as used by the command line
type Backend interface {
	Store

	// Init creates the backing storage and applies migrations.
	Init() error
	// Load opens existing storage and checks its schema version.
	Load() error
	// Describe returns a non-sensitive identifier for the backend.
	Describe() string
	// SchemaVersion returns the applied and the latest known schema version.
	SchemaVersion() (current, latest int, err error)
}

var _ Backend = (*Memory)(nil)

func (m *Memory) Init() error                      { return nil }
func (m *Memory) Load() error                      { return nil }
func (m *Memory) Describe() string                 { return "memory" }
func (m *Memory) SchemaVersion() (int, int, error) { return 0, 0, nil }
