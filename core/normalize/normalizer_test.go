package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	md, err := New().Normalize(`<h2>Title</h2><p>Some <strong>bold</strong> and <a href="https://example.com">a link</a>.</p><ul><li>one</li><li>two</li></ul>`)
	require.NoError(t, err)
	assert.Contains(t, md, "## Title")
	assert.Contains(t, md, "**bold**")
	assert.Contains(t, md, "[a link](https://example.com)")
	assert.Contains(t, md, "- one")
	assert.Contains(t, md, "- two")
}
