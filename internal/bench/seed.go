package bench

import (
	"context"
	"math/rand/v2"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// KeySpace is the bounded universe of identifiers a benchmark operates on.
// It is generated once before seeding and shared read-only by all workers.
type KeySpace []string

// NewKeySpace generates size unique random identifiers.
func NewKeySpace(size int) KeySpace {
	ks := make(KeySpace, size)
	for i := range ks {
		ks[i] = uuid.NewString()
	}
	return ks
}

// Pick returns an identifier drawn uniformly from the key space.
func (ks KeySpace) Pick() string {
	return ks[rand.IntN(len(ks))]
}

// SeedEach runs fn once per identifier with at most limit calls in flight.
// The first error cancels the remaining work and is returned; a partially
// seeded key space invalidates the run, so callers must treat any error as
// fatal.
func (ks KeySpace) SeedEach(ctx context.Context, limit int, fn func(ctx context.Context, key string) error) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for _, key := range ks {
		g.Go(func() error {
			return fn(ctx, key)
		})
	}
	return g.Wait()
}
