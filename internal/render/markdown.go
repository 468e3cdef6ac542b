// Package render turns message text into display markup.
package render

import (
	"html"
	"regexp"
	"strings"

	"github.com/mithrel/chatextract/internal/markup"
)

// Each rule is an independent substitution applied in order; nesting is not
// parsed.
var (
	h3Rule      = regexp.MustCompile(`(?m)^### (.+)$`)
	h2Rule      = regexp.MustCompile(`(?m)^## (.+)$`)
	h1Rule      = regexp.MustCompile(`(?m)^# (.+)$`)
	boldRule    = regexp.MustCompile(`\*\*(.+?)\*\*`)
	starEmRule  = regexp.MustCompile(`\*(.+?)\*`)
	underEmRule = regexp.MustCompile(`_(.+?)_`)
	fenceRule   = regexp.MustCompile("(?s)```(.*?)```")
	inlineRule  = regexp.MustCompile("`([^`]+)`")
	linkRule    = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	// Only blocks opening with a block-level tag skip the <p> wrapper;
	// inline openers such as <strong> still get wrapped.
	blockPrefixes = []string{"<h1>", "<h2>", "<h3>", "<pre>"}
)

// HTML converts the supported Markdown subset of s into an HTML fragment.
// The text is escaped exactly once, before any tag is injected.
func HTML(s string) string {
	s = markup.Clean(s)
	s = html.EscapeString(s)

	s = h3Rule.ReplaceAllString(s, "<h3>${1}</h3>")
	s = h2Rule.ReplaceAllString(s, "<h2>${1}</h2>")
	s = h1Rule.ReplaceAllString(s, "<h1>${1}</h1>")
	s = boldRule.ReplaceAllString(s, "<strong>${1}</strong>")
	s = starEmRule.ReplaceAllString(s, "<em>${1}</em>")
	s = underEmRule.ReplaceAllString(s, "<em>${1}</em>")
	s = fenceRule.ReplaceAllString(s, "<pre><code>${1}</code></pre>")
	s = inlineRule.ReplaceAllString(s, "<code>${1}</code>")
	s = linkRule.ReplaceAllString(s, `<a href="${2}" target="_blank">${1}</a>`)

	return paragraphs(s)
}

// paragraphs wraps blank-line separated blocks in <p>, leaving blocks that
// already open with a block-level tag alone.
func paragraphs(s string) string {
	var b strings.Builder
	for _, block := range strings.Split(s, "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		if isBlockLevel(block) {
			b.WriteString(block)
			continue
		}
		b.WriteString("<p>")
		b.WriteString(strings.ReplaceAll(block, "\n", "<br>"))
		b.WriteString("</p>")
	}
	return b.String()
}

func isBlockLevel(block string) bool {
	for _, p := range blockPrefixes {
		if strings.HasPrefix(block, p) {
			return true
		}
	}
	return false
}

// Markdown returns cleaned Markdown source suitable for a terminal renderer.
func Markdown(s string) string {
	s = markup.Clean(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.TrimSpace(s)
}
