// Package intern provides a process-independent string intern pool for the
// decoders. Interning is an optimisation over repeated short strings
// (enum-like attribute values, accession prefixes, database names); it has
// no observable effect on decoded values, only on the number of distinct
// backing byte slices they share.
//
// A Pool is an explicit, constructor-built dependency, never a package
// global, so callers (and tests) can run fully isolated decodes side by
// side with no shared mutable state.
package intern

import (
	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	shardCount    = 32
	perShardLimit = 4096
)

// Pool interns short, frequently repeated strings behind a small sharded
// LRU cache. Sharding by xxhash of the string keeps the common case
// lock-contention-free: two goroutines interning unrelated strings almost
// never touch the same shard.
type Pool struct {
	shards [shardCount]*lru.Cache[string, string]
}

// NewPool builds an empty intern pool. Each of the shardCount shards is
// bounded to perShardLimit entries, so the pool's memory footprint stays
// bounded even over a dump with millions of distinct short strings.
func NewPool() *Pool {
	p := &Pool{}
	for i := range p.shards {
		c, err := lru.New[string, string](perShardLimit)
		if err != nil {
			// Only returns an error for a non-positive size, which perShardLimit
			// never is.
			panic(err)
		}
		p.shards[i] = c
	}
	return p
}

// Intern returns a canonical copy of s. Repeated calls with equal strings
// return the exact same backing value once the first copy has been
// admitted to its shard.
func (p *Pool) Intern(s string) string {
	if p == nil || s == "" {
		return s
	}
	shard := p.shards[shardFor(s)]
	if v, ok := shard.Get(s); ok {
		return v
	}
	shard.Add(s, s)
	return s
}

func shardFor(s string) uint64 {
	return xxhash.Sum64String(s) % shardCount
}

// Len returns the total number of strings currently interned, summed
// across all shards. Intended for tests and diagnostics.
func (p *Pool) Len() int {
	if p == nil {
		return 0
	}
	n := 0
	for _, shard := range p.shards {
		n += shard.Len()
	}
	return n
}
