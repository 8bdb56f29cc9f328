// Package render turns a directory listing into an HTML document.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/url"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/htmlindexer/internal/markdown"
)

//go:embed templates/index.html.tmpl
var builtin embed.FS

const builtinName = "templates/index.html.tmpl"

// Data is the value handed to the listing template.
type Data struct {
	Files    []string
	Basename string
	// Readme is pre-rendered HTML of the directory's README, if any.
	Readme template.HTML
	// Description is the README's first heading, used as page metadata.
	Description string
}

// funcs are available to the built-in and to custom templates.
var funcs = template.FuncMap{
	"href": Href,
}

// Href returns the link target for a directory entry: a relative path with
// the name percent-escaped, so characters such as ':', '#' and '?' stay part
// of the file name.
func Href(name string) template.URL {
	// #nosec G203 -- the name is fully path-escaped.
	return template.URL("./" + url.PathEscape(name))
}

// Renderer executes the listing template.
type Renderer struct {
	tmpl *template.Template
	md   *markdown.Converter
}

// New returns a Renderer using the embedded template.
func New() (*Renderer, error) {
	tmpl, err := template.New(filepath.Base(builtinName)).Funcs(funcs).ParseFS(builtin, builtinName)
	if err != nil {
		return nil, fmt.Errorf("parse built-in template: %w", err)
	}
	return newRenderer(tmpl), nil
}

// NewFromFile returns a Renderer using the html/template at path.
func NewFromFile(path string) (*Renderer, error) {
	// #nosec G304 -- the template path comes from the user's configuration.
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template %s: %w", path, err)
	}
	tmpl, err := template.New(filepath.Base(path)).Funcs(funcs).Parse(string(src))
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", path, err)
	}
	return newRenderer(tmpl), nil
}

// Load returns the built-in renderer when path is empty, otherwise the
// renderer for the template at path.
func Load(path string) (*Renderer, error) {
	if path == "" {
		return New()
	}
	return NewFromFile(path)
}

func newRenderer(tmpl *template.Template) *Renderer {
	return &Renderer{
		tmpl: tmpl.Option("missingkey=error"),
		md:   markdown.New(),
	}
}

// Render executes the template with data.
func (r *Renderer) Render(data Data) (string, error) {
	if data.Files == nil {
		data.Files = []string{}
	}
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}
	return buf.String(), nil
}

// Readme converts README Markdown to HTML and extracts its first heading.
func (r *Renderer) Readme(src []byte) (template.HTML, string, error) {
	out, err := r.md.ToHTML(src)
	if err != nil {
		return "", "", err
	}
	// #nosec G203 -- the converter omits raw HTML from the source.
	return template.HTML(out), r.md.FirstHeading(src), nil
}
