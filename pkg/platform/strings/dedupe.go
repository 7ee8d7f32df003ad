// Package strings holds small string-slice helpers shared across packages.
package strings

import "strings"

// DedupeAndTrimLower trims, lowercases, and deduplicates a slice, dropping
// entries that are empty after trimming. Order of first occurrence is kept.
func DedupeAndTrimLower(values []string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		cleaned := strings.ToLower(strings.TrimSpace(v))
		if cleaned == "" {
			continue
		}
		if _, ok := seen[cleaned]; ok {
			continue
		}
		seen[cleaned] = struct{}{}
		out = append(out, cleaned)
	}
	return out
}
