package symbol

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/goliatone/go-symbol/pkg/activity"
)

// entry is one canonical, validated string value together with its liveness
// count. At most one entry exists per distinct text at any time; the pool's
// shard lock enforces that a release-to-zero and a concurrent intern of the
// same text never leave two live entries behind.
type entry struct {
	text string
	hash uint64
	pool *Pool
	refs atomic.Int64
}

type poolShard struct {
	mu      sync.Mutex
	entries map[string]*entry
}

// Pool deduplicates and stores the canonical text for one kind. It owns all
// canonical copies; handles hold liveness-extending references into it.
//
// Reclamation is eagerly-immediate: the final Release deletes the entry from
// the table inside the same critical section that observes liveness zero.
// All operations are safe for concurrent use.
type Pool struct {
	kind      string
	validator Validator
	logger    InternLogger
	hooks     activity.Hooks
	shards    []poolShard
	mask      uint64
}

// NewPool constructs a pool from the supplied options. A pool without
// WithValidator admits every string.
func NewPool(opts ...PoolOption) *Pool {
	cfg := applyPoolOptions(opts)
	p := &Pool{
		kind:      cfg.kind,
		validator: cfg.validator,
		logger:    cfg.logger,
		hooks:     cfg.hooks,
		shards:    make([]poolShard, cfg.shardCount),
		mask:      uint64(cfg.shardCount - 1),
	}
	for i := range p.shards {
		p.shards[i].entries = make(map[string]*entry)
	}
	return p
}

// Kind returns the diagnostics name the pool was created with.
func (p *Pool) Kind() string {
	return p.kind
}

func (p *Pool) shard(hash uint64) *poolShard {
	return &p.shards[hash&p.mask]
}

// Intern returns a handle for text, validating it first and deduplicating by
// content: interning the same text twice never produces two distinct live
// entries. A rejected value returns *ValidationError and leaves the pool
// unchanged.
func (p *Pool) Intern(text string) (Handle, error) {
	start := time.Now()
	if p.validator != nil {
		if err := p.validator.Validate(text); err != nil {
			verr := wrapValidationError(p.kind, text, err)
			p.observe(opIntern, text, time.Since(start), verr)
			p.emit(activity.RejectedEvent(p.kind, text, verr))
			return Handle{}, verr
		}
	}

	hash := xxhash.Sum64String(text)
	shard := p.shard(hash)

	shard.mu.Lock()
	e, found := shard.entries[text]
	if found {
		e.refs.Add(1)
	} else {
		// Canonical copy: strings.Clone also sheds any larger backing
		// array the caller's slice may be pinning.
		e = &entry{text: strings.Clone(text), hash: hash, pool: p}
		e.refs.Store(1)
		shard.entries[e.text] = e
	}
	live := e.refs.Load()
	shard.mu.Unlock()

	p.observe(opIntern, e.text, time.Since(start), nil)
	if !found {
		p.emit(activity.InternedEvent(p.kind, e.text, live))
	}
	return Handle{e: e}, nil
}

// Lookup returns a handle only if text is already interned. It does not run
// validation and never creates an entry.
func (p *Pool) Lookup(text string) (Handle, bool) {
	hash := xxhash.Sum64String(text)
	shard := p.shard(hash)

	shard.mu.Lock()
	e, found := shard.entries[text]
	if found {
		e.refs.Add(1)
	}
	shard.mu.Unlock()

	if !found {
		return Handle{}, false
	}
	return Handle{e: e}, true
}

// release drops one liveness reference. Reaching zero removes the entry from
// the table under the shard lock so a concurrent Intern of the same text
// either finds the entry while it is still live or inserts a fresh one after
// removal, never both.
func (p *Pool) release(e *entry) {
	shard := p.shard(e.hash)

	shard.mu.Lock()
	live := e.refs.Add(-1)
	var fault string
	switch {
	case live < 0:
		fault = "liveness underflow"
	case live == 0:
		if current := shard.entries[e.text]; current != e {
			fault = "entry missing from table at final release"
		} else {
			delete(shard.entries, e.text)
		}
	}
	shard.mu.Unlock()

	if fault != "" {
		panicInvariant("release", fault)
	}
	if live == 0 {
		p.emit(activity.ReclaimedEvent(p.kind, e.text))
	} else {
		p.emit(activity.ReleasedEvent(p.kind, e.text, live))
	}
}

// PoolStats is a point-in-time snapshot of one pool.
type PoolStats struct {
	Kind    string
	Entries int
	Live    int64
}

// Stats counts the distinct entries and outstanding handles across all
// shards. Shards are snapshotted one at a time, so concurrent mutation can
// skew totals; the result is diagnostic, not transactional.
func (p *Pool) Stats() PoolStats {
	stats := PoolStats{Kind: p.kind}
	for i := range p.shards {
		shard := &p.shards[i]
		shard.mu.Lock()
		stats.Entries += len(shard.entries)
		for _, e := range shard.entries {
			stats.Live += e.refs.Load()
		}
		shard.mu.Unlock()
	}
	return stats
}

func (p *Pool) observe(op string, text string, duration time.Duration, err error) {
	if p.logger == nil {
		return
	}
	p.logger.LogIntern(InternLogEvent{
		Kind:     p.kind,
		Op:       op,
		Text:     text,
		Duration: duration,
		Err:      err,
	})
}

// emit fans the event out to the configured hooks. Hook failures are
// best-effort and intentionally not propagated into pool operations.
func (p *Pool) emit(event activity.Event) {
	if !p.hooks.Enabled() {
		return
	}
	_ = p.hooks.Notify(context.Background(), event)
}
