package content

import (
	"regexp"
	"strings"
)

var (
	dotLeaderRe  = regexp.MustCompile(`\s*\.{3,}\s*`)
	pageNumRe    = regexp.MustCompile(`(?m)^\s*\d+\s*$`)
	trailNumRe   = regexp.MustCompile(`(?m)\s+\d+\s*$`)
	multiSpaceRe = regexp.MustCompile(` {2,}`)
)

// CleanText strips table-of-contents dot leaders and stray page numbers,
// merges wrapped lines into paragraphs, and collapses repeated spaces.
func CleanText(text string, opts MergeOptions) string {
	text = dotLeaderRe.ReplaceAllString(text, " ")
	text = pageNumRe.ReplaceAllString(text, "")
	text = trailNumRe.ReplaceAllString(text, "")
	text = MergeLines(text, opts)
	text = multiSpaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
