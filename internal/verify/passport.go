package verify

import (
	"fmt"
	"regexp"
	"strings"

	"veridoc/internal/extract"
)

var passportNumberExact = regexp.MustCompile(`^[A-Z]\d{6,8}$`)

// passportChecks is the fixed passport rubric. Ceiling totals 100.
var passportChecks = []Check{
	{
		Name:     "passport_number_format",
		MaxScore: 20,
		Run: func(in Input) Result {
			num := in.Fields.Get(extract.FieldPassportNumber)
			if num != "" && passportNumberExact.MatchString(strings.ToUpper(num)) {
				return Result{Passed: true, Score: 20, Details: "valid passport number format"}
			}
			return Result{Details: fmt.Sprintf("invalid passport number format: %q", num)}
		},
	},
	{
		Name:     "national_id",
		MaxScore: 15,
		Run: func(in Input) Result {
			id := in.Fields.Get(extract.FieldNationalID)
			if eightDigitsExact.MatchString(id) {
				return Result{Passed: true, Score: 15, Details: "valid national ID"}
			}
			return Result{Details: fmt.Sprintf("national ID missing or invalid: %q", id)}
		},
	},
	{
		Name:     "dates",
		MaxScore: 25,
		Run: func(in Input) Result {
			rawDOB := in.Fields.Get(extract.FieldDateOfBirth)
			rawDOI := in.Fields.Get(extract.FieldDateOfIssue)
			rawDOE := in.Fields.Get(extract.FieldDateOfExpiry)

			dob, okDOB := parseDate(rawDOB)
			doi, okDOI := parseDate(rawDOI)
			doe, okDOE := parseDate(rawDOE)

			if !okDOB || !okDOI || !okDOE {
				var missing []string
				if !okDOB {
					missing = append(missing, fmt.Sprintf("birth: %q", rawDOB))
				}
				if !okDOI {
					missing = append(missing, fmt.Sprintf("issue: %q", rawDOI))
				}
				if !okDOE {
					missing = append(missing, fmt.Sprintf("expiry: %q", rawDOE))
				}
				return Result{Details: "invalid or missing dates: " + strings.Join(missing, ", ")}
			}
			if !dob.Before(doi) || !doi.Before(doe) {
				return Result{Details: "date logic error (birth < issue < expiry)"}
			}
			return Result{Passed: true, Score: 25, Details: "all dates are valid and in correct order"}
		},
	},
	{
		Name:     "full_name_ar",
		MaxScore: 20,
		Run: func(in Input) Result {
			name := in.Fields.Get(extract.FieldArabicName)
			if name != "" && hasArabic(name) {
				return Result{Passed: true, Score: 20, Details: "valid Arabic name"}
			}
			return Result{Details: fmt.Sprintf("Arabic name missing or invalid: %q", name)}
		},
	},
	{
		Name:     "completeness",
		MaxScore: 20,
		Run: func(in Input) Result {
			return completenessCheck(in.Fields, 20, []string{
				extract.FieldPassportNumber,
				extract.FieldNationalID,
				extract.FieldDateOfBirth,
				extract.FieldArabicName,
			})
		},
	},
}
