// Package id provides the identifier sequences the matching engine draws
// order and trade ids from. The sequence is injected at engine construction
// so tests can run against a deterministic counter while deployments use
// UUIDs.
package id

import (
	"strconv"

	"github.com/google/uuid"
)

// Sequence yields unique identifiers for the lifetime of one engine.
type Sequence interface {
	Next() string
}

// Counter is a monotonically increasing sequence with an optional prefix.
// Not safe for concurrent use; the engine is single-writer anyway.
type Counter struct {
	prefix string
	n      uint64
}

// NewCounter creates a counter sequence producing prefix1, prefix2, ...
func NewCounter(prefix string) *Counter {
	return &Counter{prefix: prefix}
}

// Next returns the next identifier
func (c *Counter) Next() string {
	c.n++
	return c.prefix + strconv.FormatUint(c.n, 10)
}

// UUID is a random identifier sequence backed by uuid v4.
type UUID struct{}

// NewUUID creates a UUID sequence
func NewUUID() UUID {
	return UUID{}
}

// Next returns a fresh uuid string
func (UUID) Next() string {
	return uuid.NewString()
}
