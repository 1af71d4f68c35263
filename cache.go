package symbol

import "sync"

// RuleCache stores compiled rule programs keyed by rule text, letting many
// validators (or repeated constructions of the same kind) share one compile.
type RuleCache interface {
	Get(rule string) (any, bool)
	Set(rule string, program any)
}

// NewMemoryRuleCache returns a RuleCache backed by a sync.Map, safe for
// concurrent use and unbounded.
func NewMemoryRuleCache() RuleCache {
	return &memoryRuleCache{}
}

type memoryRuleCache struct {
	programs sync.Map
}

func (c *memoryRuleCache) Get(rule string) (any, bool) {
	return c.programs.Load(rule)
}

func (c *memoryRuleCache) Set(rule string, program any) {
	c.programs.Store(rule, program)
}
