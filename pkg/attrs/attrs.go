// Package attrs reads values out of variadic key-value attribute slices, the
// [key1, value1, key2, value2, ...] shape slog-style APIs take.
package attrs

// ExtractString returns the string value following key in the slice, or the
// empty string when the key is absent or its value is not a string.
func ExtractString(attrs []any, key string) string {
	for i := 0; i < len(attrs)-1; i += 2 {
		k, ok := attrs[i].(string)
		if !ok || k != key {
			continue
		}
		if v, ok := attrs[i+1].(string); ok {
			return v
		}
	}
	return ""
}
