package symbol

import "strings"

// Handle is a live, shareable reference to one pool entry. It is one word
// wide, safe to copy, and usable as a map key: two handles compare equal with
// == exactly when they reference the same entry.
//
// Equal and Hash follow entry identity, which within a pool coincides with
// content identity. Compare orders by canonical text so iteration over sorted
// handles is deterministic; it is a different contract from Equal and the two
// should not be mixed.
//
// A Handle must be dropped with Release once its owner is done with it; the
// final release reclaims the pool entry. The zero Handle references nothing.
type Handle struct {
	e *entry
}

// IsZero reports whether the handle references no entry.
func (h Handle) IsZero() bool {
	return h.e == nil
}

// Text returns the canonical text. The returned string stays valid for as
// long as the handle is live. The zero handle yields "".
func (h Handle) Text() string {
	if h.e == nil {
		return ""
	}
	return h.e.text
}

// String implements fmt.Stringer as an alias for Text.
func (h Handle) String() string {
	return h.Text()
}

// Equal reports entry identity. Within a pool this is equivalent to content
// equality, which is the dedup payoff: no string comparison happens here.
func (h Handle) Equal(other Handle) bool {
	return h.e == other.e
}

// Hash returns the 64-bit content hash precomputed at intern time. It is
// consistent with Equal. The zero handle hashes to zero.
func (h Handle) Hash() uint64 {
	if h.e == nil {
		return 0
	}
	return h.e.hash
}

// Compare orders handles lexicographically by canonical text, with the zero
// handle sorting first.
func (h Handle) Compare(other Handle) int {
	return strings.Compare(h.Text(), other.Text())
}

// Retain adds a liveness reference and returns a handle aliasing the same
// entry. O(1), never fails on a live handle. Retaining the zero handle
// returns the zero handle; retaining a handle whose entry was already
// reclaimed is an invariant violation and panics.
func (h Handle) Retain() Handle {
	if h.e == nil {
		return Handle{}
	}
	// A caller holding a live handle keeps refs >= 1, so the entry cannot
	// be concurrently reclaimed and a lock-free increment suffices.
	if h.e.refs.Add(1) <= 1 {
		panicInvariant("retain", "retain of reclaimed entry")
	}
	return h
}

// Release drops the liveness reference held by this handle, reclaiming the
// pool entry when it was the last one. The handle must not be used
// afterwards. Releasing the zero handle is a no-op; releasing more times
// than retained is an invariant violation and panics.
func (h Handle) Release() {
	if h.e == nil {
		return
	}
	h.e.pool.release(h.e)
}
