package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", []string{}},
		{"only separators", " ,, \t,", []string{}},
		{"comma and space", "React, Node", []string{"react", "node"}},
		{"runs of spaces", "react   node", []string{"react", "node"}},
		{"mixed runs", ",Go,,  Rust ,\nSQL,", []string{"go", "rust", "sql"}},
		{"unicode case", "ÉCOLE", []string{"école"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.in))
		})
	}
}
