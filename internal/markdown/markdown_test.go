package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToHTML(t *testing.T) {
	c := New()

	out, err := c.ToHTML([]byte("# Title\n\n| a | b |\n|---|---|\n| 1 | 2 |\n\n<script>x()</script>\n"))
	require.NoError(t, err)
	html := string(out)
	assert.Contains(t, html, "<h1>Title</h1>")
	assert.Contains(t, html, "<table>")
	assert.NotContains(t, html, "<script>")
}

func TestFirstHeading(t *testing.T) {
	c := New()

	assert.Equal(t, "Project notes", c.FirstHeading([]byte("intro\n\n## Project *notes*\n\n# Later\n")))
	assert.Empty(t, c.FirstHeading([]byte("no headings here\n")))
}
