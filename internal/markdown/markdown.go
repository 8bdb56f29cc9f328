// Package markdown converts README files into HTML fragments for listings.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// Converter renders Markdown with GitHub Flavored Markdown extensions.
// Raw HTML in the source is omitted.
type Converter struct {
	md goldmark.Markdown
}

// New returns a Converter.
func New() *Converter {
	return &Converter{md: goldmark.New(goldmark.WithExtensions(extension.GFM))}
}

// ToHTML renders body to an HTML fragment.
func (c *Converter) ToHTML(body []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.md.Convert(body, &buf); err != nil {
		return nil, fmt.Errorf("convert markdown: %w", err)
	}
	return buf.Bytes(), nil
}

// FirstHeading returns the plain text of the first heading in body, or "".
func (c *Converter) FirstHeading(body []byte) string {
	root := c.md.Parser().Parse(text.NewReader(body))
	var heading string
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		h, ok := n.(*gmast.Heading)
		if !ok {
			return gmast.WalkContinue, nil
		}
		heading = string(plainText(h, body))
		return gmast.WalkStop, nil
	})
	return heading
}

func plainText(n gmast.Node, source []byte) []byte {
	var buf bytes.Buffer
	_ = gmast.Walk(n, func(c gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if entering {
			if t, ok := c.(*gmast.Text); ok {
				buf.Write(t.Segment.Value(source))
			}
		}
		return gmast.WalkContinue, nil
	})
	return buf.Bytes()
}
