package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrimLower(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "nil slice",
			input:    nil,
			expected: nil,
		},
		{
			name:     "empty slice",
			input:    []string{},
			expected: []string{},
		},
		{
			name:     "lowercases and dedupes",
			input:    []string{"Single", "single", "SINGLE"},
			expected: []string{"single"},
		},
		{
			name:     "trims and drops blanks",
			input:    []string{"  widowed ", "", "  ", "divorced"},
			expected: []string{"widowed", "divorced"},
		},
		{
			name:     "keeps first-occurrence order",
			input:    []string{"Widowed", "divorced", "WIDOWED"},
			expected: []string{"widowed", "divorced"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DedupeAndTrimLower(tt.input))
		})
	}
}
