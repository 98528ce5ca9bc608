// Package rawjson reads values out of loosely-typed JSON documents decoded
// into map[string]any. Every accessor takes a dotted path and a default; a
// missing or mistyped field returns the default instead of failing, which is
// the contract the timeline extractor relies on.
package rawjson

import (
	"encoding/json"
	"strconv"
)

// Decode parses a JSON document into a generic map.
func Decode(b []byte) (map[string]any, error) {
	var out map[string]any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get walks a key path through nested objects. It returns (nil, false) as
// soon as any segment is absent or not an object.
func Get(obj map[string]any, path ...string) (any, bool) {
	var cur any = obj
	for _, key := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// Map returns the object at path, or nil when absent.
func Map(obj map[string]any, path ...string) map[string]any {
	v, ok := Get(obj, path...)
	if !ok {
		return nil
	}
	m, _ := v.(map[string]any)
	return m
}

// List returns the array at path, or nil when absent.
func List(obj map[string]any, path ...string) []any {
	v, ok := Get(obj, path...)
	if !ok {
		return nil
	}
	l, _ := v.([]any)
	return l
}

// String returns the string at path, or def when absent or not a string.
func String(obj map[string]any, def string, path ...string) string {
	v, ok := Get(obj, path...)
	if !ok {
		return def
	}
	s, ok := v.(string)
	if !ok {
		return def
	}
	return s
}

// Int returns the number at path as int, or def. JSON numbers decode as
// float64; numeric strings are accepted too because the platform serializes
// some counters that way.
func Int(obj map[string]any, def int, path ...string) int {
	v, ok := Get(obj, path...)
	if !ok {
		return def
	}
	return coerceInt(v, def)
}

// OptionalInt returns a pointer to the number at path, or nil when absent.
func OptionalInt(obj map[string]any, path ...string) *int {
	v, ok := Get(obj, path...)
	if !ok {
		return nil
	}
	const sentinel = -1 << 62
	n := coerceInt(v, sentinel)
	if n == sentinel {
		return nil
	}
	return &n
}

// Bool returns the boolean at path, or def.
func Bool(obj map[string]any, def bool, path ...string) bool {
	v, ok := Get(obj, path...)
	if !ok {
		return def
	}
	b, ok := v.(bool)
	if !ok {
		return def
	}
	return b
}

// Has reports whether the path resolves to any non-nil value.
func Has(obj map[string]any, path ...string) bool {
	v, ok := Get(obj, path...)
	return ok && v != nil
}

func coerceInt(v any, def int) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i)
		}
	case string:
		if i, err := strconv.Atoi(n); err == nil {
			return i
		}
	}
	return def
}
