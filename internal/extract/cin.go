package extract

import (
	"fmt"
	"regexp"
	"strings"

	"veridoc/internal/domain"
)

// arabicMonths maps the twelve Tunisian month names to their number.
var arabicMonths = map[string]string{
	"جانفي":  "01",
	"فيفري":  "02",
	"مارس":   "03",
	"أفريل":  "04",
	"ماي":    "05",
	"جوان":   "06",
	"جويلية": "07",
	"أوت":    "08",
	"سبتمبر": "09",
	"أكتوبر": "10",
	"نوفمبر": "11",
	"ديسمبر": "12",
}

var (
	dayMonthYearRe = regexp.MustCompile(`(\d{2})\s+(\p{L}+)\s+(\d{4})`)
	fatherNameRe   = regexp.MustCompile(`بن\s+([^\n]+)`)

	// Keep Arabic letters, Latin letters, and whitespace.
	arabicLatinFilter = regexp.MustCompile(`[^ء-ي\sA-Za-z]`)
	// Same plus ASCII digits, for address lines with street numbers.
	arabicLatinDigitFilter = regexp.MustCompile(`[^ء-ي\sA-Za-z0-9]`)
)

var (
	familyNameRule = labelRule{markers: []string{"اللقب"}, lookahead: true}
	givenNameRule  = labelRule{markers: []string{"الاسم"}, lookahead: true}
	professionRule = labelRule{markers: []string{"المهنة", "الصفة", "الوظيفة"}}
)

const dateLabelMarker = "تاريخ"

// Longest marker first so stripping the short form never leaves the definite
// article behind.
var addressMarkers = []string{"العنوان", "عنوان"}

// wordDate resolves a "DD <month-word> YYYY" match to ISO order. An unknown
// month word is kept verbatim so the scorer sees it as malformed rather than
// the field silently vanishing.
func wordDate(fullText string) (string, bool) {
	m := dayMonthYearRe.FindStringSubmatch(fullText)
	if m == nil {
		return "", false
	}
	day, monthWord, year := m[1], m[2], m[3]
	month, ok := arabicMonths[monthWord]
	if !ok {
		month = monthWord
	}
	return fmt.Sprintf("%s-%s-%s", year, month, day), true
}

var cinFrontExtractors = []subExtractor{
	{name: "national_id", run: func(d *document, out domain.FieldMap) {
		if m := eightDigitsRe.FindStringSubmatch(d.fullText); m != nil {
			out[FieldNationalID] = m[1]
		}
	}},
	{name: "family_name", run: func(d *document, out domain.FieldMap) {
		if v := familyNameRule.apply(d); v != "" {
			out[FieldFamilyName] = v
		}
	}},
	{name: "given_name", run: func(d *document, out domain.FieldMap) {
		if v := givenNameRule.apply(d); v != "" {
			out[FieldGivenName] = v
		}
	}},
	{name: "father_name", run: func(d *document, out domain.FieldMap) {
		if m := fatherNameRe.FindStringSubmatch(d.fullText); m != nil {
			out[FieldFatherName] = collapseSpaces(m[1])
		}
	}},
	{name: "date_of_birth", run: func(d *document, out domain.FieldMap) {
		if date, ok := wordDate(d.fullText); ok {
			out[FieldDateOfBirth] = date
		}
	}},
	{name: "place_of_birth", run: func(d *document, out domain.FieldMap) {
		// The birth place sits on the line after the date label.
		for i, line := range d.lines {
			if containsAny(line.Text, []string{dateLabelMarker}) && i+1 < len(d.lines) {
				place := arabicLatinFilter.ReplaceAllString(d.lines[i+1].Text, " ")
				if place = collapseSpaces(place); place != "" {
					out[FieldPlaceOfBirth] = place
				}
				return
			}
		}
	}},
}

var cinBackExtractors = []subExtractor{
	{name: "address", run: func(d *document, out domain.FieldMap) {
		// Up to three lines starting at the marker line; markers are stripped
		// from the first line only.
		for i, line := range d.lines {
			if !containsAny(line.Text, addressMarkers) {
				continue
			}
			var parts []string
			for j := i; j < i+3 && j < len(d.lines); j++ {
				text := d.lines[j].Text
				if j == i {
					text = stripMarkers(text, addressMarkers)
				}
				if text = collapseSpaces(text); text != "" {
					parts = append(parts, text)
				}
			}
			if len(parts) > 0 {
				addr := arabicLatinDigitFilter.ReplaceAllString(strings.Join(parts, " "), " ")
				if addr = collapseSpaces(addr); addr != "" {
					out[FieldAddress] = addr
				}
			}
			return
		}
	}},
	{name: "profession", run: func(d *document, out domain.FieldMap) {
		if v := professionRule.apply(d); v != "" {
			out[FieldProfession] = v
		}
	}},
	{name: "date_of_issue", run: func(d *document, out domain.FieldMap) {
		if date, ok := wordDate(d.fullText); ok {
			out[FieldDateOfIssue] = date
		}
	}},
}
