// Package store persists whole lists under named slots of a key-value store.
package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Slots is an opaque key-value string store with whole-value get and set.
type Slots interface {
	// Get returns the raw value at key. ok is false when the slot is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set overwrites the slot unconditionally.
	Set(ctx context.Context, key, value string) error
	Close() error
}

// Backend names a Slots implementation.
type Backend string

const (
	BackendDisk   Backend = "disk"
	BackendSQLite Backend = "sqlite"
	BackendRedis  Backend = "redis"
	BackendMemory Backend = "memory"
)

// Backends lists the supported storage backends.
func Backends() []Backend {
	return []Backend{BackendDisk, BackendSQLite, BackendRedis, BackendMemory}
}

// ParseBackend converts a string to a Backend; empty means disk.
func ParseBackend(raw string) (Backend, error) {
	b := Backend(strings.ToLower(strings.TrimSpace(raw)))
	if b == "" {
		return BackendDisk, nil
	}
	for _, candidate := range Backends() {
		if candidate == b {
			return candidate, nil
		}
	}
	return BackendDisk, fmt.Errorf("store: unknown backend %q", raw)
}

// Config is what Open needs to know about where data lives.
type Config interface {
	BasePath() string
	Backend() Backend
	RedisURL() string
	RedisPrefix() string
}

const sqliteFile = "devlog.db"

// Open creates the Slots implementation selected by cfg.
func Open(ctx context.Context, cfg Config) (Slots, error) {
	if cfg == nil {
		return nil, errors.New("store: no config")
	}
	switch cfg.Backend() {
	case "", BackendDisk:
		return NewDiskv(cfg.BasePath())
	case BackendSQLite:
		return OpenSQLite(filepath.Join(cfg.BasePath(), sqliteFile))
	case BackendRedis:
		return DialRedis(ctx, cfg.RedisURL(), cfg.RedisPrefix())
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("store: unknown backend %q", cfg.Backend())
	}
}

func validKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("store: slot key required")
	}
	if strings.ContainsAny(key, `/\`) || strings.HasPrefix(key, ".") {
		return fmt.Errorf("store: invalid slot key %q", key)
	}
	return nil
}
