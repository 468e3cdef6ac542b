package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTMLInlineScenario(t *testing.T) {
	got := HTML("**bold** and *em* and `code`")
	assert.Equal(t, "<p><strong>bold</strong> and <em>em</em> and <code>code</code></p>", got)
	assert.Equal(t, 1, strings.Count(got, "<p>"))
}

func TestHTMLEscapesOnce(t *testing.T) {
	got := HTML("a & b < c > d")
	assert.Equal(t, "<p>a &amp; b &lt; c &gt; d</p>", got)
	assert.Equal(t, 1, strings.Count(got, "&amp;"))
	assert.NotContains(t, got, "&amp;amp;")
	assert.NotContains(t, got, "&amp;lt;")

	assert.Equal(t, "<p>say &#34;hi&#34;</p>", HTML(`say "hi"`))
}

func TestHTMLHeaders(t *testing.T) {
	assert.Equal(t, "<h1>Title</h1><p>Body</p>", HTML("# Title\n\nBody"))
	assert.Equal(t, "<h2>Two</h2>", HTML("## Two"))
	assert.Equal(t, "<h3>Three</h3>", HTML("### Three"))
	// Headers only match at line start.
	assert.Equal(t, "<p>not # a header</p>", HTML("not # a header"))
}

func TestHTMLCodeBlock(t *testing.T) {
	got := HTML("```\nx < y\n```")
	assert.Equal(t, "<pre><code>\nx &lt; y\n</code></pre>", got)
}

func TestHTMLLink(t *testing.T) {
	got := HTML("see [docs](https://example.com/a)")
	assert.Equal(t, `<p>see <a href="https://example.com/a" target="_blank">docs</a></p>`, got)
}

func TestHTMLParagraphs(t *testing.T) {
	assert.Equal(t, "<p>line1<br>line2</p><p>line3</p>", HTML("line1\nline2\n\nline3"))
	assert.Equal(t, "<p><em>x</em></p>", HTML("_x_"))
}

func TestHTMLEmptyAndUnmatched(t *testing.T) {
	assert.Equal(t, "", HTML(""))
	assert.Equal(t, "", HTML("  \n\n "))
	assert.Equal(t, "<p>a * b</p>", HTML("a * b"))
	assert.Equal(t, "<p>**open</p>", HTML("**open"))
}

func TestHTMLCleansMarkupFirst(t *testing.T) {
	assert.Equal(t, "<p>Answer</p>", HTML("\ue200cite\ue202X\ue201Answer"))
}

func TestMarkdown(t *testing.T) {
	assert.Equal(t, "# T\nbody", Markdown("\ue200cite\ue202X\ue201 # T\r\nbody\r\n"))
}
