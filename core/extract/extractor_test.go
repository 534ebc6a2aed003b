package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<!DOCTYPE html>
<html><head><title>  My
  Page </title><script>var x = 1;</script></head>
<body>
<nav><a href="/">Home</a></nav>
<main><h1>Heading</h1><p>Body <b>text</b></p><img src="a.png"></main>
<footer>foot</footer>
</body></html>`

func TestExtract(t *testing.T) {
	out, err := New().Extract(page)
	require.NoError(t, err)
	assert.Contains(t, out, "<main>")
	assert.Contains(t, out, "<h1>Heading</h1>")
	assert.NotContains(t, out, "Home")
	assert.NotContains(t, out, "foot")
	assert.NotContains(t, out, "img")
}

func TestExtractFallsBackToBody(t *testing.T) {
	out, err := New().Extract("<p>just a paragraph</p>")
	require.NoError(t, err)
	assert.Contains(t, out, "<body>")
	assert.Contains(t, out, "just a paragraph")
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "My Page", Title(page))
	assert.Equal(t, "Only H1", Title("<body><h1>Only H1</h1></body>"))
	assert.Equal(t, "", Title("<p>nothing</p>"))
}
