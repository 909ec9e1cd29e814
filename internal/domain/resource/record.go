package resource

import (
	"fmt"
	"strconv"
	"strings"
)

// Record is one collection entry exactly as the gateway returned it.
// The client never mutates a record in place; collections are replaced
// wholesale after a successful round trip.
type Record map[string]any

// ID returns the record's opaque identifier.
func (r Record) ID() string {
	return r.Text("_id")
}

// Text coerces the named field to a string for seeding and searching.
// Numbers render without an exponent, lists join on ", " (the gateway
// stores job skills as an array), booleans as true/false. Nested fields
// are addressed with a dot, e.g. "userId.username". The second return
// is false when the field is absent or null.
func (r Record) Lookup(name string) (string, bool) {
	var v any = map[string]any(r)

	for _, part := range strings.Split(name, ".") {
		m, ok := v.(map[string]any)
		if !ok {
			if rec, ok2 := v.(Record); ok2 {
				m = map[string]any(rec)
			} else {
				return "", false
			}
		}
		v, ok = m[part]
		if !ok || v == nil {
			return "", false
		}
	}

	switch t := v.(type) {
	case string:
		return t, true
	case bool:
		return strconv.FormatBool(t), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok {
				parts = append(parts, s)
			} else {
				parts = append(parts, fmt.Sprintf("%v", item))
			}
		}
		return strings.Join(parts, ", "), true
	default:
		return fmt.Sprintf("%v", t), true
	}
}

// Text is Lookup without the presence flag.
func (r Record) Text(name string) string {
	s, _ := r.Lookup(name)
	return s
}

// Bool reads a boolean field; absent fields default to the given value.
func (r Record) Bool(name string, def bool) bool {
	v, ok := r[name]
	if !ok || v == nil {
		return def
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return def
}

// Strings returns the named field as a string list: image reference
// arrays, or a single reference wrapped in a list.
func (r Record) Strings(name string) []string {
	v, ok := r[name]
	if !ok || v == nil {
		return nil
	}

	switch t := v.(type) {
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		if t == "" {
			return nil
		}
		return []string{t}
	default:
		return nil
	}
}
