package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrim(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{"nil passes through", nil, nil},
		{"empty passes through", []string{}, []string{}},
		{"trims whitespace", []string{"  a ", "b  "}, []string{"a", "b"}},
		{"drops empties", []string{"a", "", "   ", "b"}, []string{"a", "b"}},
		{"dedupes preserving order", []string{"b", "a", "b", "a"}, []string{"b", "a"}},
		{"dedupe happens after trim", []string{" a", "a "}, []string{"a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DedupeAndTrim(tt.input))
		})
	}
}
