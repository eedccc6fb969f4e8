// Package render holds the pure text derivations run on every write of an
// author-supplied field: markdown to sanitized HTML, and title to URL slug.
package render

import (
	"bytes"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Raw HTML is let through the markdown stage on purpose: the bluemonday
// policy below is the single authority on what survives, and passing HTML
// through unchanged is what keeps Markdown(Markdown(x)) == Markdown(x).
var markdown = goldmark.New(
	goldmark.WithExtensions(extension.Linkify),
	goldmark.WithRendererOptions(html.WithUnsafe()),
)

var policy = func() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(
		"a", "abbr", "acronym", "b", "blockquote", "code",
		"em", "i", "li", "ol", "pre", "strong", "ul",
		"h1", "h2", "h3", "p",
	)
	p.AllowAttrs("href").OnElements("a")
	p.AllowURLSchemes("http", "https", "mailto")
	return p
}()

// Markdown renders source to an HTML fragment restricted to a fixed tag
// allow-list. Bare URLs and email addresses become anchors. The result is
// recomputed from scratch every time, so the transform is idempotent:
// feeding the output back in yields the same output.
func Markdown(source string) string {
	if len(source) == 0 {
		return ""
	}

	var buf bytes.Buffer
	if err := markdown.Convert([]byte(source), &buf); err != nil {
		// Conversion over an in-memory buffer cannot fail in practice;
		// fall back to escaping the source as plain text.
		return policy.Sanitize(source)
	}

	return strings.TrimRight(policy.Sanitize(buf.String()), "\n")
}
