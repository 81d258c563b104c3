package gotms

// Body is a decoded response body: a generic keyed structure as returned by
// the server, before any resource wrapper is applied. Collection endpoints
// carry their elements under the "objects" key.
type Body map[string]any

// String returns the named attribute as a string, or "" if absent or not a
// string.
func (b Body) String(key string) string {
	s, _ := b[key].(string)
	return s
}

// Strings returns the named attribute as a list of strings. Both []string and
// []any (the shape produced by JSON decoding) are accepted; elements of any
// other type are skipped.
func (b Body) Strings(key string) []string {
	switch v := b[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Int returns the named attribute as an int. JSON decoding yields float64 for
// numbers, so both int and float64 are accepted.
func (b Body) Int(key string) int {
	switch v := b[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return 0
}

// Bool returns the named attribute as a bool, or false if absent.
func (b Body) Bool(key string) bool {
	v, _ := b[key].(bool)
	return v
}

// Objects returns the collection elements of a list response body.
func (b Body) Objects() []Body {
	raw, ok := b["objects"].([]any)
	if !ok {
		return nil
	}
	out := make([]Body, 0, len(raw))
	for _, e := range raw {
		if m, ok := e.(map[string]any); ok {
			out = append(out, Body(m))
		}
	}
	return out
}

// bodyFromCache converts a cached value back into a Body. Values read from
// the persistent tier after a reload come back as generic JSON maps.
func bodyFromCache(v any) (Body, bool) {
	switch vv := v.(type) {
	case Body:
		return vv, true
	case map[string]any:
		return Body(vv), true
	}
	return nil, false
}

// bodiesFromCache converts a cached value back into a list of bodies. An
// empty list is a valid (positive) cached result.
func bodiesFromCache(v any) ([]Body, bool) {
	switch vv := v.(type) {
	case []Body:
		return vv, true
	case []any:
		out := make([]Body, 0, len(vv))
		for _, e := range vv {
			b, ok := bodyFromCache(e)
			if !ok {
				return nil, false
			}
			out = append(out, b)
		}
		return out, true
	}
	return nil, false
}
