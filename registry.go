package symbol

import (
	"reflect"
	"slices"
	"strings"
	"sync"
)

// Registry maps kind types to their pools. No pool exists for a kind before
// its first intern or lookup; creation is lazy and idempotent under
// concurrent first use.
//
// The package-level functions operate on a process-wide default registry.
// Code that wants isolated pool state, tests in particular, constructs its
// own Registry and uses InternIn/LookupIn.
type Registry struct {
	pools    sync.Map // reflect.Type -> *Pool
	defaults []PoolOption
}

// NewRegistry constructs an empty registry. The supplied options are applied
// to every pool the registry creates, before the kind's own name and
// validator.
func NewRegistry(opts ...PoolOption) *Registry {
	return &Registry{defaults: slices.Clone(opts)}
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry backing Intern and Lookup.
func Default() *Registry {
	return defaultRegistry
}

// poolOf returns the pool for kind K, creating it on first use. When two
// goroutines race to create the same pool only one survives; the loser's
// pool is discarded before any entry is interned into it.
func poolOf[K Kind](r *Registry) *Pool {
	var kind K
	key := reflect.TypeOf(kind)
	if p, ok := r.pools.Load(key); ok {
		return p.(*Pool)
	}
	opts := append(slices.Clone(r.defaults),
		WithKindName(kind.Name()),
		WithValidator(ValidatorFunc(kind.Validate)),
	)
	created := NewPool(opts...)
	actual, _ := r.pools.LoadOrStore(key, created)
	return actual.(*Pool)
}

// Stats snapshots every pool the registry has created, ordered by kind name.
func (r *Registry) Stats() []PoolStats {
	var stats []PoolStats
	r.pools.Range(func(_, value any) bool {
		stats = append(stats, value.(*Pool).Stats())
		return true
	})
	slices.SortFunc(stats, func(a, b PoolStats) int {
		return strings.Compare(a.Kind, b.Kind)
	})
	return stats
}
