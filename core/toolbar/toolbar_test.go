package toolbar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnippetDefaults(t *testing.T) {
	tests := map[Action]string{
		Bold:   "**bold text**",
		Italic: "*italic text*",
		Header: "# Header",
		List:   "- List item",
		Code:   "`code`",
		Link:   "[link text](https://example.com)",
	}
	for action, want := range tests {
		assert.Equal(t, want, Snippet(action, ""), "action %s", action)
	}
	assert.Equal(t, "", Snippet(Action("strike"), ""))
	assert.Equal(t, "sel", Snippet(Action("strike"), "sel"))
}

func TestApply(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		start, end int
		action     Action
		want       string
		caret      int
	}{
		{"wrap selection", "make this loud", 10, 14, Bold, "make this **loud**", 18},
		{"insert at caret", "ab", 1, 1, Italic, "a*italic text*b", 14},
		{"reversed range", "hello", 5, 0, Header, "# hello", 7},
		{"clamped", "x", -3, 99, Code, "`x`", 3},
		{"runes", "héllo wörld", 6, 11, Link, "héllo [wörld](https://example.com)", 34},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, caret := Apply(tt.text, tt.start, tt.end, tt.action)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.caret, caret)
		})
	}
}

func TestParseAction(t *testing.T) {
	a, err := ParseAction(" Bold ")
	require.NoError(t, err)
	assert.Equal(t, Bold, a)

	_, err = ParseAction("underline")
	assert.Error(t, err)
}
