// Package verify scores extracted document fields (or container-level
// structural signals) against a fixed weighted rubric and produces a
// normalized authenticity report. The check set and its ceiling are fixed per
// document type: missing data produces failing checks, never fewer checks.
package verify

import (
	"fmt"
	"log"
	"math"
	"regexp"
	"time"

	"veridoc/internal/domain"
)

// Result is the outcome of a single rubric check.
type Result struct {
	Passed  bool
	Score   int
	Details string
}

// Check is one named, weighted rubric rule. Run must degrade to a failed
// Result on absent or malformed data; it never reports an error.
type Check struct {
	Name     string
	MaxScore int
	Run      func(in Input) Result
}

// Input carries the field map and the evaluation time shared by every check
// in a rubric run.
type Input struct {
	Fields domain.FieldMap
	Now    time.Time
}

var arabicCharRe = regexp.MustCompile(`[\x{0600}-\x{06FF}]`)

func hasArabic(s string) bool { return arabicCharRe.MatchString(s) }

// dateFormats is the ordered list of calendar formats a date field may carry;
// the first successful parse wins.
var dateFormats = []string{
	"2006-01-02",
	"02-01-2006",
	"02/01/2006",
	"2006/01/02",
	"02.01.2006",
	"2006.01.02",
}

// parseDate tries the ordered format list; all failures mean invalid.
func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, format := range dateFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ScoreFields evaluates the field-based rubric for an identity document.
func ScoreFields(fields domain.FieldMap, docType domain.DocType, now time.Time) (domain.VerificationReport, error) {
	var checks []Check
	switch docType {
	case domain.DocTypeCIN:
		checks = cinChecks
	case domain.DocTypePassport:
		checks = passportChecks
	default:
		return domain.VerificationReport{}, fmt.Errorf("%w: %s", domain.ErrUnknownDocType, docType)
	}
	return runRubric(docType, checks, Input{Fields: fields, Now: now}), nil
}

// runRubric executes every check, clamps scores into [0, MaxScore], and
// normalizes the total. A panic inside one check is converted into a failed
// result for that check only.
func runRubric(docType domain.DocType, checks []Check, in Input) domain.VerificationReport {
	results := make(map[string]domain.VerificationCheck, len(checks))
	total, max := 0, 0
	for _, c := range checks {
		res := runCheckContained(c, in)
		if res.Score < 0 {
			res.Score = 0
		}
		if res.Score > c.MaxScore {
			res.Score = c.MaxScore
		}
		results[c.Name] = domain.VerificationCheck{
			Name:     c.Name,
			Passed:   res.Passed,
			Score:    res.Score,
			MaxScore: c.MaxScore,
			Details:  res.Details,
		}
		total += res.Score
		max += c.MaxScore
	}
	return buildReport(docType, results, total, max)
}

func runCheckContained(c Check, in Input) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("verify: check %s panicked: %v", c.Name, r)
			res = Result{Passed: false, Score: 0, Details: fmt.Sprintf("check failed: %v", r)}
		}
	}()
	return c.Run(in)
}

func buildReport(docType domain.DocType, checks map[string]domain.VerificationCheck, total, max int) domain.VerificationReport {
	overall := 0
	if max > 0 {
		overall = int(math.Round(100 * float64(total) / float64(max)))
	}
	return domain.VerificationReport{
		OverallScore:    overall,
		IsAuthentic:     overall >= 60,
		ConfidenceLevel: confidenceLevel(overall),
		Checks:          checks,
		DocType:         docType,
	}
}

func confidenceLevel(score int) domain.ConfidenceLevel {
	switch {
	case score >= 80:
		return domain.ConfidenceHigh
	case score >= 60:
		return domain.ConfidenceMedium
	default:
		return domain.ConfidenceLow
	}
}

// ErrorReport is the zero-score report used when no partial signal can be
// trusted, e.g. an unreadable container.
func ErrorReport(docType domain.DocType, details string) domain.VerificationReport {
	return domain.VerificationReport{
		OverallScore:    0,
		IsAuthentic:     false,
		ConfidenceLevel: domain.ConfidenceLow,
		Checks: map[string]domain.VerificationCheck{
			"error": {Name: "error", Passed: false, Score: 0, MaxScore: 0, Details: details},
		},
		DocType: docType,
	}
}
