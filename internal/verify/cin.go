package verify

import (
	"fmt"
	"regexp"
	"time"

	"veridoc/internal/domain"
	"veridoc/internal/extract"
)

var eightDigitsExact = regexp.MustCompile(`^\d{8}$`)

// ageYears truncates to whole 365-day years, matching the rubric's
// day-count convention.
func ageYears(birth, now time.Time) int {
	return int(now.Sub(birth).Hours() / 24 / 365)
}

// cinChecks is the fixed CIN rubric. Ceiling totals 100.
var cinChecks = []Check{
	{
		Name:     "national_id_format",
		MaxScore: 20,
		Run: func(in Input) Result {
			id := in.Fields.Get(extract.FieldNationalID)
			if eightDigitsExact.MatchString(id) {
				return Result{Passed: true, Score: 20, Details: "national ID format is valid (8 digits)"}
			}
			return Result{Details: fmt.Sprintf("invalid national ID format (must be 8 digits, got: %q)", id)}
		},
	},
	{
		Name:     "date_of_birth",
		MaxScore: 15,
		Run: func(in Input) Result {
			raw := in.Fields.Get(extract.FieldDateOfBirth)
			dob, ok := parseDate(raw)
			if !ok {
				return Result{Details: fmt.Sprintf("invalid or missing date of birth: %q", raw)}
			}
			age := ageYears(dob, in.Now)
			if age < 0 || age > 120 {
				return Result{Details: fmt.Sprintf("suspicious age: %d years", age)}
			}
			return Result{Passed: true, Score: 15, Details: fmt.Sprintf("valid date of birth (age: %d years)", age)}
		},
	},
	{
		Name:     "date_of_issue",
		MaxScore: 15,
		Run: func(in Input) Result {
			raw := in.Fields.Get(extract.FieldDateOfIssue)
			doi, ok := parseDate(raw)
			if !ok {
				return Result{Details: fmt.Sprintf("invalid or missing issue date: %q", raw)}
			}
			if doi.After(in.Now) {
				return Result{Details: "issue date is in the future"}
			}
			return Result{Passed: true, Score: 15, Details: "valid issue date"}
		},
	},
	{
		Name:     "names",
		MaxScore: 15,
		Run: func(in Input) Result {
			given := in.Fields.Get(extract.FieldGivenName)
			family := in.Fields.Get(extract.FieldFamilyName)
			if given == "" && family == "" {
				return Result{Details: "name fields missing"}
			}
			givenOK := given != "" && hasArabic(given)
			familyOK := family != "" && hasArabic(family)
			switch {
			case givenOK && familyOK:
				return Result{Passed: true, Score: 15, Details: "names contain Arabic characters"}
			case givenOK || familyOK:
				return Result{Score: 5, Details: "only one name field contains Arabic characters (partial credit)"}
			default:
				return Result{Details: fmt.Sprintf("names should contain Arabic characters (given: %q, family: %q)", given, family)}
			}
		},
	},
	{
		Name:     "place_of_birth",
		MaxScore: 10,
		Run: func(in Input) Result {
			place := in.Fields.Get(extract.FieldPlaceOfBirth)
			if place != "" && hasArabic(place) {
				return Result{Passed: true, Score: 10, Details: "valid place of birth"}
			}
			return Result{Details: fmt.Sprintf("place of birth missing or invalid: %q", place)}
		},
	},
	{
		Name:     "address",
		MaxScore: 10,
		Run: func(in Input) Result {
			addr := in.Fields.Get(extract.FieldAddress)
			if addr != "" && hasArabic(addr) {
				return Result{Passed: true, Score: 10, Details: "valid address format"}
			}
			return Result{Details: "address missing or invalid (optional field)"}
		},
	},
	{
		Name:     "completeness",
		MaxScore: 15,
		Run: func(in Input) Result {
			return completenessCheck(in.Fields, 15, []string{
				extract.FieldNationalID,
				extract.FieldGivenName,
				extract.FieldFamilyName,
				extract.FieldDateOfBirth,
			})
		},
	},
}

// completenessCheck is the all-or-nothing required-field rule shared by the
// identity rubrics.
func completenessCheck(fields domain.FieldMap, score int, required []string) Result {
	var missing []string
	for _, name := range required {
		if fields.Get(name) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return Result{Details: fmt.Sprintf("missing fields: %v", missing)}
	}
	return Result{Passed: true, Score: score, Details: "all required fields present"}
}
