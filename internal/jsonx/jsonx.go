// Package jsonx provides defensive accessors over decoded JSON values.
// Provider responses have no trusted schema: any level may be absent, null,
// or a different type than expected. Every accessor returns a typed default
// on mismatch instead of panicking.
package jsonx

// Map walks nested objects by key, returning nil if any hop is missing or
// not an object.
func Map(v any, keys ...string) map[string]any {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	for _, key := range keys {
		next, exists := m[key]
		if !exists {
			return nil
		}
		m, ok = next.(map[string]any)
		if !ok {
			return nil
		}
	}
	return m
}

// Slice returns the array at key, or nil.
func Slice(v any, key string) []any {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	s, ok := m[key].([]any)
	if !ok {
		return nil
	}
	return s
}

// MapSlice returns the array at key filtered to object elements.
func MapSlice(v any, key string) []map[string]any {
	raw := Slice(v, key)
	if raw == nil {
		return nil
	}
	out := make([]map[string]any, 0, len(raw))
	for _, item := range raw {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

// First returns the first object element of the array at key, or nil.
func First(v any, key string) map[string]any {
	for _, item := range Slice(v, key) {
		if m, ok := item.(map[string]any); ok {
			return m
		}
	}
	return nil
}

// String returns the string at key, or "".
func String(v any, key string) string {
	m, ok := v.(map[string]any)
	if !ok {
		return ""
	}
	s, ok := m[key].(string)
	if !ok {
		return ""
	}
	return s
}

// Float returns the number at key, or 0. JSON numbers decode as float64;
// integer-typed values are accepted too.
func Float(v any, key string) float64 {
	m, ok := v.(map[string]any)
	if !ok {
		return 0
	}
	switch n := m[key].(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}

// Int returns the number at key truncated to int, or 0.
func Int(v any, key string) int {
	return int(Float(v, key))
}

// Bool returns the boolean at key, or false.
func Bool(v any, key string) bool {
	m, ok := v.(map[string]any)
	if !ok {
		return false
	}
	b, ok := m[key].(bool)
	if !ok {
		return false
	}
	return b
}

// Strings returns the array at key filtered to string elements.
func Strings(v any, key string) []string {
	raw := Slice(v, key)
	if raw == nil {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Score100 converts a provider-native 0..1 score at key to an integer 0-100
// score, truncating rather than rounding. Missing or null scores map to 0.
func Score100(v any, key string) int {
	return int(Float(v, key) * 100)
}
