package gotms

// Filters is a set of attribute criteria matched against response bodies.
// All pairs must match (string equality on the named attributes).
type Filters map[string]string

// Canonical returns the order-independent textual rendering of the filter
// set, used for cache-key derivation.
func (f Filters) Canonical() string {
	return canonicalPairs(f)
}

// Match reports whether every filter pair matches the body.
func (f Filters) Match(b Body) bool {
	for k, want := range f {
		if b.String(k) != want {
			return false
		}
	}
	return true
}

// Apply returns the subset of bodies matching the filter set. The result is
// never nil: an empty match is a real, cacheable outcome.
func (f Filters) Apply(in []Body) []Body {
	out := make([]Body, 0, len(in))
	for _, b := range in {
		if f.Match(b) {
			out = append(out, b)
		}
	}
	return out
}

// Intersect computes the values of the named list attributes shared by the
// two collections: the union of attrA values across a, restricted to values
// that also appear under attrB somewhere in b. First-seen order on the a
// side is preserved; duplicates are dropped.
func Intersect(a, b []Body, attrA, attrB string) []string {
	inB := make(map[string]bool)
	for _, body := range b {
		for _, v := range body.Strings(attrB) {
			inB[v] = true
		}
	}

	var shared []string
	seen := make(map[string]bool)
	for _, body := range a {
		for _, v := range body.Strings(attrA) {
			if inB[v] && !seen[v] {
				shared = append(shared, v)
				seen[v] = true
			}
		}
	}
	return shared
}
