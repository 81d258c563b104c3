package gotms

import (
	"net/url"
	"sort"
	"strings"
)

// OperationKey derives the cache key for a filtered operation: the operation
// name followed by the canonical rendering of its filter inputs. Structurally
// equal filters produce identical keys regardless of how they were built. An
// empty filter set still yields a distinct key (trailing "?"), so a filtered
// call with no criteria never collides with the unfiltered listing.
func OperationKey(op string, f Filters) string {
	return op + "?" + f.Canonical()
}

// searchKey derives the cache key for an intersection search over two
// tagged inputs.
func searchKey(op string, langs LanguageInput, projs ProjectInput) string {
	return op + "?languages=" + url.QueryEscape(langs.canonical()) +
		"&projects=" + url.QueryEscape(projs.canonical())
}

// canonicalPairs renders a string map as sorted, escaped k=v pairs joined by
// "&". Map iteration order never leaks into the result.
func canonicalPairs(m map[string]string) string {
	if len(m) == 0 {
		return ""
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, url.QueryEscape(k)+"="+url.QueryEscape(m[k]))
	}
	return strings.Join(parts, "&")
}

// canonicalList renders a list of identifiers sorted and comma-joined, so
// resolved inputs key the same way regardless of argument order.
func canonicalList(ids []string) string {
	sorted := make([]string, len(ids))
	copy(sorted, ids)
	sort.Strings(sorted)
	return strings.Join(sorted, ",")
}
