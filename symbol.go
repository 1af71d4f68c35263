// Package symbol canonicalizes strings into deduplicated, cheaply-comparable
// handles, partitioned by kind so different domains of strings cannot be
// confused at compile time. Each kind enforces its own validity rule before a
// string is admitted to its pool.
package symbol

import "fmt"

// Kind tags a family of interned strings. Implementations are small value
// types whose zero value is usable: the registry calls methods on it to name
// the kind's pool and validate candidate text.
type Kind interface {
	// Name identifies the kind on errors and events.
	Name() string
	// Validate decides whether text may be interned for this kind.
	// It must be pure and side-effect free.
	Validate(text string) error
}

// Symbol is a kind-tagged handle. Two symbols of different kinds are
// different types and cannot be compared, which keeps string domains apart at
// compile time. The zero Symbol references nothing.
//
// Symbols are comparable: s == t is equivalent to s.Equal(t), so a Symbol can
// be a map key or set member directly.
type Symbol[K Kind] struct {
	h Handle
}

// Intern returns the canonical symbol for text under kind K, using the
// process-wide default registry. The kind's validator runs first; a rejected
// value returns *ValidationError and leaves the pool unchanged.
func Intern[K Kind](text string) (Symbol[K], error) {
	return InternIn[K](defaultRegistry, text)
}

// InternIn is Intern against an explicit registry, for callers that inject
// pool state instead of relying on the process-wide default.
func InternIn[K Kind](r *Registry, text string) (Symbol[K], error) {
	h, err := poolOf[K](r).Intern(text)
	if err != nil {
		return Symbol[K]{}, err
	}
	return Symbol[K]{h: h}, nil
}

// MustIntern is Intern for constant strings written in source code; it
// panics when the value fails validation.
func MustIntern[K Kind](text string) Symbol[K] {
	s, err := Intern[K](text)
	if err != nil {
		panic(fmt.Sprintf("symbol: static string used as symbol is invalid: %v", err))
	}
	return s
}

// Lookup returns the symbol for text under kind K only if it is already
// interned in the default registry. No validation runs and no entry is
// created.
func Lookup[K Kind](text string) (Symbol[K], bool) {
	return LookupIn[K](defaultRegistry, text)
}

// LookupIn is Lookup against an explicit registry.
func LookupIn[K Kind](r *Registry, text string) (Symbol[K], bool) {
	h, ok := poolOf[K](r).Lookup(text)
	if !ok {
		return Symbol[K]{}, false
	}
	return Symbol[K]{h: h}, true
}

// Handle returns the untyped handle underneath the symbol.
func (s Symbol[K]) Handle() Handle {
	return s.h
}

// IsZero reports whether the symbol references no entry.
func (s Symbol[K]) IsZero() bool {
	return s.h.IsZero()
}

// Text returns the canonical text; valid for as long as the symbol is live.
func (s Symbol[K]) Text() string {
	return s.h.Text()
}

// String implements fmt.Stringer as an alias for Text.
func (s Symbol[K]) String() string {
	return s.h.Text()
}

// Equal reports whether both symbols reference the same pool entry. This is
// identity, not string comparison; within a kind the two coincide.
func (s Symbol[K]) Equal(other Symbol[K]) bool {
	return s.h.Equal(other.h)
}

// Hash returns the content hash precomputed at intern time, consistent with
// Equal.
func (s Symbol[K]) Hash() uint64 {
	return s.h.Hash()
}

// Compare orders symbols lexicographically by canonical text. Ordering is a
// text contract, distinct from the identity contract of Equal.
func (s Symbol[K]) Compare(other Symbol[K]) int {
	return s.h.Compare(other.h)
}

// Retain adds a liveness reference and returns a symbol aliasing the same
// entry.
func (s Symbol[K]) Retain() Symbol[K] {
	return Symbol[K]{h: s.h.Retain()}
}

// Release drops this symbol's liveness reference; the last release reclaims
// the pool entry. The symbol must not be used afterwards.
func (s Symbol[K]) Release() {
	s.h.Release()
}

// KindName returns the diagnostics name of K.
func (Symbol[K]) KindName() string {
	var kind K
	return kind.Name()
}
