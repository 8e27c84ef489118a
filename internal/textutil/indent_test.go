package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndent(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"", 2, ""},
		{"a", 0, "a"},
		{"a", 2, "  a"},
		{"a\nb", 1, " a\n b"},
		{"a\nb\n", 2, "  a\n  b\n"},
		{"a\n\nb", 2, "  a\n  \n  b"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Indent(tt.in, tt.n), "Indent(%q, %d)", tt.in, tt.n)
	}
}
