// Package ident generates record identifiers that do not depend on the
// wall clock, so entries created in the same instant never collide.
package ident

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator hands out identifiers unique for the life of a store.
type Generator interface {
	NewID() string
}

// UUID generates random (version 4) UUIDs.
type UUID struct{}

func (UUID) NewID() string {
	return uuid.NewString()
}

// Sequence is a monotonic counter, handy for tests and bulk imports where a
// predictable id is more useful than a random one.
type Sequence struct {
	Prefix string
	n      atomic.Uint64
}

func (s *Sequence) NewID() string {
	return s.Prefix + strconv.FormatUint(s.n.Add(1), 10)
}

// Default is used by stores that were not given a generator.
var Default Generator = UUID{}
