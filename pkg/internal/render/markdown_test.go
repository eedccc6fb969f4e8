package render_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zhangmm/zblog/pkg/internal/render"
)

func TestMarkdownBasicFormatting(t *testing.T) {
	out := render.Markdown("body of the *zblog* post")
	assert.Equal(t, "<p>body of the <em>zblog</em> post</p>", out)
}

func TestMarkdownHeadings(t *testing.T) {
	assert.Equal(t, "<h1>Title</h1>", render.Markdown("# Title"))
	assert.Equal(t, "<h3>Deep</h3>", render.Markdown("### Deep"))

	// Headings below level three are not on the allow-list; the text
	// survives, the tag does not.
	out := render.Markdown("#### Too Deep")
	assert.NotContains(t, out, "<h4>")
	assert.Contains(t, out, "Too Deep")
}

func TestMarkdownStripsDisallowedTags(t *testing.T) {
	out := render.Markdown("hello <script>alert(1)</script> world")
	assert.NotContains(t, out, "<script>")
	assert.NotContains(t, out, "alert(1)")

	out = render.Markdown(`<img src="x" onerror="boom()">still here`)
	assert.NotContains(t, out, "<img")
	assert.NotContains(t, out, "onerror")
	assert.Contains(t, out, "still here")
}

func TestMarkdownStripsAttributes(t *testing.T) {
	out := render.Markdown(`<a href="https://example.com" onclick="boom()" target="_blank">link</a>`)
	assert.Contains(t, out, `href="https://example.com"`)
	assert.NotContains(t, out, "onclick")
	assert.NotContains(t, out, "target")
}

func TestMarkdownLinkifiesBareUrls(t *testing.T) {
	out := render.Markdown("read https://example.com/docs before asking")
	assert.Contains(t, out, `<a href="https://example.com/docs"`)
}

func TestMarkdownRejectsUnsafeSchemes(t *testing.T) {
	out := render.Markdown(`[click](javascript:alert(1))`)
	assert.NotContains(t, out, "javascript:")
}

func TestMarkdownIdempotent(t *testing.T) {
	sources := []string{
		"body of the *zblog* post",
		"# Title\n\nwith [a link](https://example.com) and `code`",
		"- one\n- two\n\n> quoted",
		"bare link https://example.com in text",
	}

	for _, source := range sources {
		first := render.Markdown(source)
		assert.Equal(t, first, render.Markdown(source), "same input twice must agree")
		assert.Equal(t, first, render.Markdown(first), "re-rendering the output must change nothing")
	}
}

func TestMarkdownEmptySource(t *testing.T) {
	assert.Equal(t, "", render.Markdown(""))
}

func TestMarkdownLists(t *testing.T) {
	out := render.Markdown("1. first\n2. second")
	assert.Contains(t, out, "<ol>")
	assert.Contains(t, out, "<li>first</li>")
	assert.True(t, strings.HasSuffix(out, "</ol>"))
}
