package kindset

import (
	"fmt"
	"regexp"
	"slices"
	"sort"
	"sync"

	symbol "github.com/goliatone/go-symbol"
)

// Set holds runtime kinds by name, each with its own validator and pool.
// All methods are safe for concurrent use; pools themselves handle
// concurrent interning.
type Set struct {
	mu       sync.RWMutex
	kinds    map[string]*record
	poolOpts []symbol.PoolOption
	cache    symbol.RuleCache
	registry *symbol.FunctionRegistry
}

type record struct {
	def  Definition
	pool *symbol.Pool
}

// Option configures a Set.
type Option func(*Set)

// WithPoolOptions applies opts to every pool the set creates.
func WithPoolOptions(opts ...symbol.PoolOption) Option {
	return func(s *Set) {
		s.poolOpts = append(s.poolOpts, opts...)
	}
}

// WithRuleCache shares a compiled-rule cache across the set's validators.
func WithRuleCache(cache symbol.RuleCache) Option {
	return func(s *Set) {
		s.cache = cache
	}
}

// WithFunctionRegistry exposes registry functions to the set's rules.
func WithFunctionRegistry(registry *symbol.FunctionRegistry) Option {
	return func(s *Set) {
		if registry == nil {
			return
		}
		s.registry = registry.Clone()
	}
}

// New constructs an empty Set.
func New(opts ...Option) *Set {
	s := &Set{
		kinds: make(map[string]*record),
		cache: symbol.NewMemoryRuleCache(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Register adds a kind to the set. The definition is validated and its rule
// compiled before anything is stored, so a broken declaration leaves the set
// unchanged. Duplicate names are an error.
func (s *Set) Register(def Definition) error {
	if err := def.Validate(); err != nil {
		return err
	}
	validator, err := s.buildValidator(def)
	if err != nil {
		return fmt.Errorf("kindset: kind %q: %w", def.Name, err)
	}

	opts := append(slices.Clone(s.poolOpts),
		symbol.WithKindName(def.Name),
		symbol.WithValidator(validator),
	)
	pool := symbol.NewPool(opts...)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.kinds[def.Name]; exists {
		return fmt.Errorf("kindset: kind %q already registered", def.Name)
	}
	s.kinds[def.Name] = &record{def: def, pool: pool}
	return nil
}

// Intern canonicalizes text under the named kind. Unknown kinds return
// ErrUnknownKind; rejected values return *symbol.ValidationError.
func (s *Set) Intern(kind, text string) (symbol.Handle, error) {
	rec, err := s.lookupKind(kind)
	if err != nil {
		return symbol.Handle{}, err
	}
	return rec.pool.Intern(text)
}

// Lookup returns a handle only if text is already interned under kind.
func (s *Set) Lookup(kind, text string) (symbol.Handle, bool) {
	rec, err := s.lookupKind(kind)
	if err != nil {
		return symbol.Handle{}, false
	}
	return rec.pool.Lookup(text)
}

// DecodeText is the decode half of the serialization contract for untyped
// handles: it interns the payload under kind and surfaces validation
// failures as the decode error.
func (s *Set) DecodeText(kind string, data []byte) (symbol.Handle, error) {
	return s.Intern(kind, string(data))
}

// Kinds returns registered kind names sorted alphabetically.
func (s *Set) Kinds() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.kinds))
	for name := range s.kinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Describe returns the introspection document for every registered kind,
// ordered by name.
func (s *Set) Describe() Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc := Document{Kinds: make([]Descriptor, 0, len(s.kinds))}
	for _, rec := range s.kinds {
		doc.Kinds = append(doc.Kinds, Descriptor{
			Name:        rec.def.Name,
			Engine:      rec.def.Engine,
			Rule:        rec.def.Rule,
			Description: rec.def.Description,
			Entries:     rec.pool.Stats().Entries,
		})
	}
	sort.Slice(doc.Kinds, func(i, j int) bool {
		return doc.Kinds[i].Name < doc.Kinds[j].Name
	})
	return doc
}

// Stats snapshots every pool in the set, ordered by kind name.
func (s *Set) Stats() []symbol.PoolStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stats := make([]symbol.PoolStats, 0, len(s.kinds))
	for _, rec := range s.kinds {
		stats = append(stats, rec.pool.Stats())
	}
	sort.Slice(stats, func(i, j int) bool {
		return stats[i].Kind < stats[j].Kind
	})
	return stats
}

func (s *Set) lookupKind(kind string) (*record, error) {
	s.mu.RLock()
	rec, ok := s.kinds[kind]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return rec, nil
}

func (s *Set) buildValidator(def Definition) (symbol.Validator, error) {
	switch def.Engine {
	case EngineAny:
		return symbol.AnyText, nil
	case EngineExpr:
		return symbol.NewExprValidator(def.Rule,
			symbol.ExprWithRuleCache(s.cache),
			symbol.ExprWithFunctionRegistry(s.registry),
		)
	case EngineCEL:
		return symbol.NewCELValidator(def.Rule,
			symbol.CELWithRuleCache(s.cache),
			symbol.CELWithFunctionRegistry(s.registry),
		)
	case EngineJS:
		return symbol.NewJSValidator(def.Rule,
			symbol.JSWithRuleCache(s.cache),
			symbol.JSWithFunctionRegistry(s.registry),
		)
	case EnginePattern:
		re, err := regexp.Compile(anchorPattern(def.Rule))
		if err != nil {
			return nil, err
		}
		return symbol.ValidatorFunc(func(text string) error {
			if !re.MatchString(text) {
				return fmt.Errorf("%w: %s", ErrPatternMismatch, re.String())
			}
			return nil
		}), nil
	default:
		return nil, fmt.Errorf("unknown engine %q", def.Engine)
	}
}

// anchorPattern forces whole-string matching so a pattern kind cannot admit
// values that merely contain a matching substring.
func anchorPattern(pattern string) string {
	return "\\A(?:" + pattern + ")\\z"
}
