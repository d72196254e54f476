package dedup

import (
	"context"

	"github.com/jonesrussell/crimewatch/internal/logger"
)

// Registry holds every exact and similarity hash seen so far. It is
// an explicit object passed into each decision, never ambient state:
// tests build fresh registries per case, and a run owns exactly one.
// Fingerprints accumulate for the lifetime of the run; there is no
// eviction or decay.
type Registry struct {
	exact      map[string]struct{}
	similarity map[string]struct{}
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		exact:      make(map[string]struct{}),
		similarity: make(map[string]struct{}),
	}
}

// Register records both hashes of an accepted article so future
// repeats of this exact variant are caught.
func (r *Registry) Register(fp Fingerprint) {
	r.AddExact(fp.ExactHash)
	r.AddSimilarity(fp.SimilarityHash)
}

// AddExact records an exact hash.
func (r *Registry) AddExact(hash string) {
	if hash != "" {
		r.exact[hash] = struct{}{}
	}
}

// AddSimilarity records a similarity hash.
func (r *Registry) AddSimilarity(hash string) {
	if hash != "" {
		r.similarity[hash] = struct{}{}
	}
}

// HasExact reports whether the exact hash was seen before.
func (r *Registry) HasExact(hash string) bool {
	_, ok := r.exact[hash]
	return ok
}

// HasSimilarity reports whether the similarity hash was seen before.
func (r *Registry) HasSimilarity(hash string) bool {
	_, ok := r.similarity[hash]
	return ok
}

// Size returns the number of tracked exact and similarity hashes.
func (r *Registry) Size() (exact, similarity int) {
	return len(r.exact), len(r.similarity)
}

// BootstrapStrategy reloads previously persisted fingerprints at
// startup. Implementations own the storage format: the store-backed
// strategy reads hash columns and falls back to recomputing from raw
// text, so storage can evolve without touching the dedup engine.
type BootstrapStrategy interface {
	Fingerprints(ctx context.Context) (exact, similarity []string, err error)
}

// Bootstrap builds a registry from a strategy. A strategy failure is
// survivable: the run continues with a cold registry and may
// under-detect duplicates across the restart, but it never claims a
// record is a duplicate it cannot prove.
func Bootstrap(ctx context.Context, strategy BootstrapStrategy, log logger.Logger) *Registry {
	reg := NewRegistry()
	if strategy == nil {
		return reg
	}

	exact, similarity, err := strategy.Fingerprints(ctx)
	if err != nil {
		log.Warn("fingerprint bootstrap failed, starting with empty registry",
			logger.Error(err))
		return reg
	}

	for _, h := range exact {
		reg.AddExact(h)
	}
	for _, h := range similarity {
		reg.AddSimilarity(h)
	}

	log.Info("duplicate registry bootstrapped",
		logger.Int("exact_hashes", len(reg.exact)),
		logger.Int("similarity_hashes", len(reg.similarity)),
	)
	return reg
}
