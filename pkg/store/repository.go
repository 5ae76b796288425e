package store

import (
	"context"
	"encoding/json"
	"fmt"
)

// Repository loads and saves one list of records as a single value.
type Repository[T any] interface {
	Load(ctx context.Context) ([]T, error)
	Save(ctx context.Context, items []T) error
}

// Load reads the slot at key as a JSON array of T. An absent slot yields an
// empty list; a slot that does not decode is an error.
func Load[T any](ctx context.Context, s Slots, key string) ([]T, error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("store: read slot %q: %w", key, err)
	}
	if !ok {
		return []T{}, nil
	}
	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("store: decode slot %q: %w", key, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Save serializes the full list and overwrites the slot at key.
func Save[T any](ctx context.Context, s Slots, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("store: encode slot %q: %w", key, err)
	}
	if err := s.Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("store: write slot %q: %w", key, err)
	}
	return nil
}

// NewRepository binds a slot key to a Slots backend.
func NewRepository[T any](s Slots, key string) Repository[T] {
	return &slotRepository[T]{slots: s, key: key}
}

type slotRepository[T any] struct {
	slots Slots
	key   string
}

func (r *slotRepository[T]) Load(ctx context.Context) ([]T, error) {
	return Load[T](ctx, r.slots, r.key)
}

func (r *slotRepository[T]) Save(ctx context.Context, items []T) error {
	return Save(ctx, r.slots, r.key, items)
}
