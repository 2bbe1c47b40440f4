package extract

import (
	"regexp"
	"strings"
)

// substitution is one confusable-character replacement. The list is applied
// left to right; order matters because an early replacement may produce a
// character a later rule would otherwise rewrite.
type substitution struct {
	from string
	to   string
}

// passportConfusables normalizes recognition look-alikes before passport
// number matching: currency/section glyphs read as S, digit/letter swaps, and
// Arabic-Indic digits mapped to ASCII.
var passportConfusables = []substitution{
	{"$", "S"},
	{"§", "S"},
	{"5", "S"},
	{"O", "0"},
	{"I", "1"},
	{"Z", "2"},
	{"₂", "2"},
	{"٢", "2"},
	{"٠", "0"},
	{"١", "1"},
	{"٣", "3"},
	{"٤", "4"},
	{"٥", "5"},
	{"٦", "6"},
	{"٧", "7"},
	{"٨", "8"},
	{"٩", "9"},
}

// normalizeConfusables upper-cases the text and applies the substitution
// list in order.
func normalizeConfusables(text string) string {
	t := strings.ToUpper(text)
	for _, s := range passportConfusables {
		t = strings.ReplaceAll(t, s.from, s.to)
	}
	return t
}

// patternSet is an ordered list of patterns evaluated first-match-wins.
// Precedence is the slice order, which keeps it auditable and testable per
// rule instead of being buried in conditional branches.
type patternSet []*regexp.Regexp

// firstMatch returns the first capture group of the first pattern that
// matches, in declaration order.
func (ps patternSet) firstMatch(s string) (string, bool) {
	for _, re := range ps {
		if m := re.FindStringSubmatch(s); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// labelRule extracts a value from a line carrying a label marker: the marker
// substrings are stripped from the line, and if the remainder is empty and
// lookahead is enabled, the value is read from the following line instead.
type labelRule struct {
	markers   []string
	lookahead bool
}

// apply scans lines for the first one containing any marker and resolves the
// value per the rule. Returns "" when no marker line is found or the value
// resolves empty.
func (r labelRule) apply(d *document) string {
	for i, line := range d.lines {
		if !containsAny(line.Text, r.markers) {
			continue
		}
		value := stripMarkers(line.Text, r.markers)
		if value == "" && r.lookahead && i+1 < len(d.lines) {
			value = strings.TrimSpace(d.lines[i+1].Text)
		}
		return value
	}
	return ""
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func stripMarkers(s string, markers []string) string {
	for _, m := range markers {
		s = strings.ReplaceAll(s, m, "")
	}
	return strings.TrimSpace(s)
}

// collapseSpaces rewrites any whitespace run as a single space and trims.
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// titleCase upper-cases the first letter of each ASCII word and lower-cases
// the rest; non-Latin words pass through unchanged.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if len(w) > 0 && w[0] >= 'a' && w[0] <= 'z' {
			words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
		} else if len(w) > 0 && w[0] >= 'A' && w[0] <= 'Z' {
			words[i] = w[:1] + strings.ToLower(w[1:])
		}
	}
	return strings.Join(words, " ")
}
