// Package markup strips provider-internal control markup from message text.
package markup

import "regexp"

var (
	citeSpan   = regexp.MustCompile(`\x{E200}cite\x{E202}[^\x{E201}]*\x{E201}`)
	entitySpan = regexp.MustCompile(`\x{E200}entity\x{E202}\[[^\x{E201}]*?\]\x{E201}`)
	privateUse = regexp.MustCompile(`[\x{E000}-\x{F8FF}]`)
)

// Clean removes citation spans, then entity spans, then any leftover Private
// Use Area code point. Whole spans must go first: the last pass alone would
// leave their interior text behind.
func Clean(s string) string {
	if !HasMarkup(s) {
		return s
	}
	s = citeSpan.ReplaceAllString(s, "")
	s = entitySpan.ReplaceAllString(s, "")
	return privateUse.ReplaceAllString(s, "")
}

// HasMarkup reports whether s contains any Private Use Area code point.
func HasMarkup(s string) bool {
	return privateUse.MatchString(s)
}
