package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlug(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"Jane Doe", "jane-doe"},
		{"  Jane   Doe  ", "jane-doe"},
		{"UPPER case Name", "upper-case-name"},
		{"Café & Bar #1", "caf-bar-1"},
		{"already-a-slug", "already-a-slug"},
		{"trailing punctuation!!!", "trailing-punctuation"},
		{"!!!", ""},
		{"", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, GenerateSlug(tc.input), "input %q", tc.input)
	}
}
