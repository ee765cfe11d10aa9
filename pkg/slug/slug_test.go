// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/inkwell/pkg/slug"
)

/*
TestFrom verifies the Unicode-to-ASCII slug pipeline.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "Hello World", "hello-world"},
		{"accents", "Café au Lait", "cafe-au-lait"},
		{"punctuation", "Go 1.22: What's New?", "go-1-22-what-s-new"},
		{"extra_whitespace", "  spaced   out  ", "spaced-out"},
		{"already_slug", "already-a-slug", "already-a-slug"},
		{"symbols_only", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, slug.From(tt.input))
		})
	}
}
