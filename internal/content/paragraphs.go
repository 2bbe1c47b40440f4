package content

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MergeOptions tunes paragraph re-segmentation. The defaults reproduce the
// behavior the heuristics were calibrated on; they are exposed because the
// constants have no principled derivation and callers may need to adjust
// them per corpus.
type MergeOptions struct {
	// MinFlushLen is the minimum buffered length before a sentence boundary
	// (terminal punctuation followed by an uppercase start) ends a paragraph.
	MinFlushLen int
	// TerminalPunct is the set of characters that count as a sentence end.
	TerminalPunct string
}

// DefaultMergeOptions returns the calibrated heuristic constants.
func DefaultMergeOptions() MergeOptions {
	return MergeOptions{MinFlushLen: 60, TerminalPunct: ".!?:"}
}

var (
	// headingRe matches numbered section headings like "3 Results" or
	// "2.1 Méthode".
	headingRe = regexp.MustCompile(`^\d+(\.\d+)?\s+[A-ZÀ-Ý]`)
	// listRe matches bulleted or enumerated list openers.
	listRe = regexp.MustCompile(`^(—|-|•|\d+\.)\s`)
)

// MergeLines rejoins hard-wrapped source lines into paragraphs. A blank line,
// a heading or list opener, or a sentence boundary past MinFlushLen flushes
// the current paragraph; hyphen-terminated lines are joined to their
// continuation without a space. Paragraphs are separated by blank lines in
// the output.
func MergeLines(text string, opts MergeOptions) string {
	var merged []string
	var buffer string

	flush := func() {
		if buffer != "" {
			merged = append(merged, buffer)
			buffer = ""
		}
	}

	for _, line := range strings.Split(text, "\n") {
		stripped := strings.TrimSpace(line)
		if stripped == "" {
			flush()
			continue
		}

		isSection := headingRe.MatchString(stripped)
		isList := listRe.MatchString(stripped)
		endsSentence := buffer != "" && strings.ContainsRune(opts.TerminalPunct, lastRune(buffer))

		switch {
		case buffer == "":
			buffer = stripped
		case isSection || isList:
			flush()
			buffer = stripped
		case endsSentence && startsUpper(stripped) && len(buffer) >= opts.MinFlushLen:
			flush()
			buffer = stripped
		case strings.HasSuffix(buffer, "-"):
			buffer = buffer[:len(buffer)-1] + stripped
		default:
			buffer += " " + stripped
		}
	}
	flush()

	return strings.Join(merged, "\n\n")
}

func lastRune(s string) rune {
	r, _ := utf8.DecodeLastRuneInString(s)
	return r
}

func startsUpper(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}
