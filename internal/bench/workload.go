package bench

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/user/primbench/pkg/client"
)

// Workload issues operations against one primitive through its client
// handle. The handle is obtained once before the run and shared read-only
// across all workers; implementations must be safe for concurrent use.
//
// Write receives the worker's random draw so implementations can select
// among a primitive's mutating operations without another source of
// randomness.
type Workload interface {
	// Seed populates the key/element universe before measurement starts.
	Seed(ctx context.Context) error
	// Write performs one write-class operation.
	Write(ctx context.Context, n int) error
	// Read performs one read-class operation.
	Read(ctx context.Context) error
}

type counterWorkload struct {
	c *client.Counter
}

// NewCounterWorkload builds a workload over a counter handle. Writes
// alternate between increments and decrements of a small random delta;
// reads fetch the value. A counter has no key space, so seeding is a no-op.
func NewCounterWorkload(c *client.Counter) Workload {
	return &counterWorkload{c: c}
}

func (w *counterWorkload) Seed(ctx context.Context) error {
	return nil
}

func (w *counterWorkload) Write(ctx context.Context, n int) error {
	if n%2 == 0 {
		_, err := w.c.Increment(ctx, rand.Int64N(10))
		return err
	}
	_, err := w.c.Decrement(ctx, rand.Int64N(10))
	return err
}

func (w *counterWorkload) Read(ctx context.Context) error {
	_, err := w.c.Get(ctx)
	return err
}

type mapWorkload struct {
	m         *client.Map
	keys      KeySpace
	seedLimit int
}

// NewMapWorkload builds a workload over a map handle with a key universe of
// numKeys identifiers. Seeding writes one entry per key; writes alternate
// between puts and removes of uniformly drawn keys, reads are gets.
func NewMapWorkload(m *client.Map, numKeys, seedLimit int) Workload {
	return &mapWorkload{m: m, keys: NewKeySpace(numKeys), seedLimit: seedLimit}
}

func (w *mapWorkload) Seed(ctx context.Context) error {
	err := w.keys.SeedEach(ctx, w.seedLimit, func(ctx context.Context, key string) error {
		_, err := w.m.Put(ctx, key, uuid.NewString())
		return err
	})
	if err != nil {
		return fmt.Errorf("seed map: %w", err)
	}
	return nil
}

func (w *mapWorkload) Write(ctx context.Context, n int) error {
	if n%2 == 0 {
		_, err := w.m.Put(ctx, w.keys.Pick(), w.keys.Pick())
		return err
	}
	_, err := w.m.Remove(ctx, w.keys.Pick())
	return err
}

func (w *mapWorkload) Read(ctx context.Context) error {
	_, err := w.m.Get(ctx, w.keys.Pick())
	return err
}

type setWorkload struct {
	s         *client.Set
	elements  KeySpace
	seedLimit int
}

// NewSetWorkload builds a workload over a set handle with an element
// universe of numElements identifiers. Seeding adds each element once;
// writes alternate between adds and removes, reads are contains checks.
func NewSetWorkload(s *client.Set, numElements, seedLimit int) Workload {
	return &setWorkload{s: s, elements: NewKeySpace(numElements), seedLimit: seedLimit}
}

func (w *setWorkload) Seed(ctx context.Context) error {
	err := w.elements.SeedEach(ctx, w.seedLimit, func(ctx context.Context, elem string) error {
		_, err := w.s.Add(ctx, elem)
		return err
	})
	if err != nil {
		return fmt.Errorf("seed set: %w", err)
	}
	return nil
}

func (w *setWorkload) Write(ctx context.Context, n int) error {
	if n%2 == 0 {
		_, err := w.s.Add(ctx, w.elements.Pick())
		return err
	}
	_, err := w.s.Remove(ctx, w.elements.Pick())
	return err
}

func (w *setWorkload) Read(ctx context.Context) error {
	_, err := w.s.Contains(ctx, w.elements.Pick())
	return err
}
