package extract

import (
	"regexp"
	"strings"

	"veridoc/internal/domain"
)

var (
	// Ordered passport number patterns: contextual country marker first, then
	// a bare letter+7 digits, then the looser letter+6-7 digits variants the
	// engine produces on worn documents.
	passportNumberPatterns = patternSet{
		regexp.MustCompile(`(?:TUN|2UN|٢UN)\s*([A-Z]\d{7})`),
		regexp.MustCompile(`\b([A-Z]\d{7})\b`),
		regexp.MustCompile(`\b([HS]\d{6,7})\b`),
	}
	passportNumberFallback = regexp.MustCompile(`([SHsh$]\d{6,7})`)

	eightDigitsRe  = regexp.MustCompile(`\b(\d{8})\b`)
	dmyDateRe      = regexp.MustCompile(`(\d{2}-\d{2}-\d{4})`)
	arabicWordRe   = regexp.MustCompile(`[\x{0600}-\x{06FF}]+`)
	birthPlaceRe   = regexp.MustCompile(`(?i)(TUNIS|FRANCE|PARIS|تونس|فرنسا)`)
	genderMaleRe   = regexp.MustCompile(`\bM\b|ذكر`)
	genderFemaleRe = regexp.MustCompile(`\bF\b|أنثى`)

	professionWords = []string{"طبيب", "مهندس", "مشروع", "استاذ"}
)

const passportMarkerWord = "جواز"

// extractPassportNumber normalizes confusables, then tries the ordered
// pattern list. If nothing matches but the text clearly talks about a
// passport, a last lenient pattern runs on the raw text.
func extractPassportNumber(text string) (string, bool) {
	if num, ok := passportNumberPatterns.firstMatch(normalizeConfusables(text)); ok {
		return num, true
	}
	if strings.Contains(strings.ToUpper(text), "PASSPORT") || strings.Contains(text, passportMarkerWord) {
		if m := passportNumberFallback.FindStringSubmatch(text); m != nil {
			return strings.ReplaceAll(strings.ToUpper(m[1]), "$", "S"), true
		}
	}
	return "", false
}

var passportExtractors = []subExtractor{
	{name: "passport_number", run: func(d *document, out domain.FieldMap) {
		for _, line := range d.lines {
			if num, ok := extractPassportNumber(line.Text); ok {
				out[FieldPassportNumber] = num
				return
			}
		}
	}},
	{name: "national_id", run: func(d *document, out domain.FieldMap) {
		if m := eightDigitsRe.FindStringSubmatch(d.fullText); m != nil {
			out[FieldNationalID] = m[1]
		}
	}},
	{name: "dates", run: func(d *document, out domain.FieldMap) {
		// The first three DD-MM-YYYY substrings in document order are birth,
		// issue, expiry respectively.
		dates := dmyDateRe.FindAllString(d.fullText, 3)
		fields := []string{FieldDateOfBirth, FieldDateOfIssue, FieldDateOfExpiry}
		for i, date := range dates {
			out[fields[i]] = date
		}
	}},
	{name: "arabic_name", run: func(d *document, out domain.FieldMap) {
		for _, line := range d.lines {
			words := arabicWordRe.FindAllString(line.Text, -1)
			if len(words) >= 3 && !strings.Contains(line.Text, passportMarkerWord) {
				out[FieldArabicName] = line.Text
				return
			}
		}
	}},
	{name: "latin_names", run: func(d *document, out domain.FieldMap) {
		for i, line := range d.lines {
			upper := strings.ToUpper(line.Text)
			if strings.Contains(upper, "SURNAME") && i+1 < len(d.lines) {
				out[FieldFamilyName] = strings.ReplaceAll(d.lines[i+1].Text, " ", "")
			}
			if strings.Contains(upper, "GIVEN") && i+1 < len(d.lines) {
				out[FieldGivenNames] = strings.TrimSpace(d.lines[i+1].Text)
			}
		}
	}},
	{name: "nationality", run: func(d *document, out domain.FieldMap) {
		if strings.Contains(strings.ToUpper(d.fullText), "TUNISIAN") || strings.Contains(d.fullText, "تونسية") {
			out[FieldNationality] = "Tunisian"
		}
	}},
	{name: "place_of_birth", run: func(d *document, out domain.FieldMap) {
		if m := birthPlaceRe.FindString(d.fullText); m != "" {
			out[FieldPlaceOfBirth] = titleCase(m)
		}
	}},
	{name: "gender", run: func(d *document, out domain.FieldMap) {
		switch {
		case genderMaleRe.MatchString(d.fullText):
			out[FieldGender] = "Male"
		case genderFemaleRe.MatchString(d.fullText):
			out[FieldGender] = "Female"
		}
	}},
	{name: "issuing_authority", run: func(d *document, out domain.FieldMap) {
		if strings.Contains(strings.ToUpper(d.fullText), "TUNIS") {
			out[FieldIssuingAuthority] = "Tunis"
		}
	}},
	{name: "profession", run: func(d *document, out domain.FieldMap) {
		for _, line := range d.lines {
			if containsAny(line.Text, professionWords) {
				out[FieldProfession] = line.Text
				return
			}
		}
	}},
}
