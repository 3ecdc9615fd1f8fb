// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/inkwell/pkg/slug"
)

/*
TestFrom covers normalization, accent stripping, and hyphen cleanup.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Hello World", "hello-world"},
		{"accents", "Café au Lait", "cafe-au-lait"},
		{"punctuation", "Go: the good, the bad & the ugly!", "go-the-good-the-bad-the-ugly"},
		{"multi_space", "several   spaces", "several-spaces"},
		{"leading_trailing", "  --Trimmed--  ", "trimmed"},
		{"digits", "Top 10 Posts of 2026", "top-10-posts-of-2026"},
		{"already_slug", "already-a-slug", "already-a-slug"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.input))
		})
	}
}
