// Package persist stores opaque blobs under string keys.
//
// The store snapshot, the user directory, the CLI session token and the token
// signing secret each live under one key. Backends: SQLite (default), JSON
// files, Redis, and an in-memory map for tests.
package persist

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

const (
	KeyState   = "clickup-clone-storage"
	KeyUsers   = "user-storage"
	KeySession = "session"
	KeySecret  = "session-secret"
)

var ErrNotFound = errors.New("key not found")

type Backend interface {
	// Get returns ErrNotFound when key has never been written (or was deleted).
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

type OpenOptions struct {
	// Kind is sqlite|file|redis|memory.
	Kind string
	// Dir holds the SQLite database or the JSON files.
	Dir         string
	RedisURL    string
	RedisPrefix string
}

// Open returns the backend named by opts.Kind.
func Open(ctx context.Context, opts OpenOptions) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Kind)) {
	case "", "sqlite":
		return OpenSQLite(ctx, SQLitePath(opts.Dir))
	case "file", "json":
		return OpenFile(opts.Dir)
	case "redis":
		return OpenRedis(ctx, opts.RedisURL, opts.RedisPrefix)
	case "memory":
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %q (expected sqlite|file|redis|memory)", opts.Kind)
	}
}

// Memory is a process-local Backend.
type Memory struct {
	mu sync.RWMutex
	m  map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{m: map[string][]byte{}}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.m[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *Memory) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.m[key] = append([]byte(nil), value...)
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.m, key)
	return nil
}

func (m *Memory) Close() error { return nil }
