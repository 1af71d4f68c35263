package symbol

import "github.com/goliatone/go-symbol/pkg/activity"

const defaultShardCount = 16

// PoolOption configures a Pool at construction time.
type PoolOption func(*poolConfig)

type poolConfig struct {
	kind       string
	validator  Validator
	logger     InternLogger
	hooks      activity.Hooks
	shardCount int
}

func applyPoolOptions(opts []PoolOption) poolConfig {
	cfg := poolConfig{shardCount: defaultShardCount}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.shardCount < 1 {
		cfg.shardCount = 1
	}
	cfg.shardCount = ceilPowerOfTwo(cfg.shardCount)
	return cfg
}

// WithKindName sets the diagnostics name carried on errors, log events, and
// activity events emitted by the pool.
func WithKindName(name string) PoolOption {
	return func(cfg *poolConfig) {
		cfg.kind = name
	}
}

// WithValidator sets the admission rule run before any pool mutation.
func WithValidator(v Validator) PoolOption {
	return func(cfg *poolConfig) {
		cfg.validator = v
	}
}

// WithLogger attaches an operation logger to the pool.
func WithLogger(logger InternLogger) PoolOption {
	return func(cfg *poolConfig) {
		cfg.logger = logger
	}
}

// WithActivityHooks attaches lifecycle hooks notified on intern, release,
// reclaim, and rejection. Nil entries are dropped; hook errors are not
// propagated into pool operations.
func WithActivityHooks(hooks activity.Hooks) PoolOption {
	normalized := cloneActivityHooks(hooks)
	return func(cfg *poolConfig) {
		cfg.hooks = normalized
	}
}

// WithShardCount sets how many lock-striped shards back the dedup table.
// Values are rounded up to a power of two.
func WithShardCount(n int) PoolOption {
	return func(cfg *poolConfig) {
		cfg.shardCount = n
	}
}

func cloneActivityHooks(hooks activity.Hooks) activity.Hooks {
	if len(hooks) == 0 {
		return nil
	}
	normalized := make([]activity.Hook, 0, len(hooks))
	for _, hook := range hooks {
		if hook == nil {
			continue
		}
		normalized = append(normalized, hook)
	}
	if len(normalized) == 0 {
		return nil
	}
	return activity.Hooks(normalized)
}

func ceilPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
