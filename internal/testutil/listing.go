package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/net/html"
)

// Link is one anchor of a generated listing.
type Link struct {
	Text string
	Href string
}

// ListingEntries parses a generated index.html and returns the text of every
// link inside the element with id "files", in document order.
func ListingEntries(t *testing.T, indexPath string) []string {
	t.Helper()
	links := ListingLinks(t, indexPath)
	entries := make([]string, 0, len(links))
	for _, l := range links {
		entries = append(entries, l.Text)
	}
	return entries
}

// ListingLinks parses a generated index.html and returns every link inside
// the element with id "files", in document order.
func ListingLinks(t *testing.T, indexPath string) []Link {
	t.Helper()
	// #nosec G304 -- test helper, paths are controlled by test code
	f, err := os.Open(indexPath)
	if err != nil {
		t.Fatalf("open %s: %v", indexPath, err)
	}
	defer func() {
		_ = f.Close()
	}()

	doc, err := html.Parse(f)
	if err != nil {
		t.Fatalf("parse %s: %v", indexPath, err)
	}

	var links []Link
	var walk func(n *html.Node, inList bool)
	walk = func(n *html.Node, inList bool) {
		if n.Type == html.ElementNode {
			if getAttr(n, "id") == "files" {
				inList = true
			}
			if inList && n.Data == "a" {
				links = append(links, Link{Text: strings.TrimSpace(textOf(n)), Href: getAttr(n, "href")})
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, inList)
		}
	}
	walk(doc, false)
	return links
}

// PageTitle returns the text of the <title> element of a generated page.
func PageTitle(t *testing.T, indexPath string) string {
	t.Helper()
	// #nosec G304 -- test helper, paths are controlled by test code
	data, err := os.ReadFile(indexPath)
	if err != nil {
		t.Fatalf("read %s: %v", indexPath, err)
	}
	doc, err := html.Parse(strings.NewReader(string(data)))
	if err != nil {
		t.Fatalf("parse %s: %v", indexPath, err)
	}
	var title string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "title" {
			title = strings.TrimSpace(textOf(n))
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return title
}

// IndexFiles returns every index.html below root, relative and slash separated.
func IndexFiles(t *testing.T, root string) []string {
	t.Helper()
	var out []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && d.Name() == "index.html" {
			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				return relErr
			}
			out = append(out, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk %s: %v", root, err)
	}
	return out
}

func getAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textOf(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
