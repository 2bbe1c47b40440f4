package verify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veridoc/internal/domain"
	"veridoc/internal/extract"
)

var evalTime = time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

func validCINFields() domain.FieldMap {
	return domain.FieldMap{
		extract.FieldNationalID:   "12345678",
		extract.FieldGivenName:    "محمد",
		extract.FieldFamilyName:   "الهاشمي",
		extract.FieldDateOfBirth:  "1990-01-17",
		extract.FieldDateOfIssue:  "2015-05-03",
		extract.FieldPlaceOfBirth: "تونس",
		extract.FieldAddress:      "نهج الحرية تونس",
	}
}

func TestScoreFields_CIN_AllWellFormed(t *testing.T) {
	report, err := ScoreFields(validCINFields(), domain.DocTypeCIN, evalTime)
	require.NoError(t, err)

	assert.Equal(t, 100, report.OverallScore)
	assert.True(t, report.IsAuthentic)
	assert.Equal(t, domain.ConfidenceHigh, report.ConfidenceLevel)
	assert.Equal(t, domain.DocTypeCIN, report.DocType)
	for name, check := range report.Checks {
		assert.True(t, check.Passed, "check %s should pass", name)
	}
}

func TestScoreFields_CIN_FixedDenominator(t *testing.T) {
	full, err := ScoreFields(validCINFields(), domain.DocTypeCIN, evalTime)
	require.NoError(t, err)
	empty, err := ScoreFields(domain.FieldMap{}, domain.DocTypeCIN, evalTime)
	require.NoError(t, err)

	// Missing data fails checks; it never removes them.
	require.Equal(t, len(full.Checks), len(empty.Checks))
	sum := func(r domain.VerificationReport) int {
		total := 0
		for _, c := range r.Checks {
			total += c.MaxScore
		}
		return total
	}
	assert.Equal(t, sum(full), sum(empty))
	assert.Equal(t, 0, empty.OverallScore)
	assert.False(t, empty.IsAuthentic)
}

func TestScoreFields_CIN_NationalIDFormat(t *testing.T) {
	for _, tc := range []struct {
		id     string
		passed bool
	}{
		{"12345678", true},
		{"1234567", false},
		{"123456789", false},
		{"1234567a", false},
		{"", false},
	} {
		fields := validCINFields()
		fields[extract.FieldNationalID] = tc.id
		report, err := ScoreFields(fields, domain.DocTypeCIN, evalTime)
		require.NoError(t, err)
		assert.Equal(t, tc.passed, report.Checks["national_id_format"].Passed, "id %q", tc.id)
	}
}

func TestScoreFields_CIN_AgePlausibility(t *testing.T) {
	fields := validCINFields()
	fields[extract.FieldDateOfBirth] = "1880-01-01"
	report, err := ScoreFields(fields, domain.DocTypeCIN, evalTime)
	require.NoError(t, err)

	check := report.Checks["date_of_birth"]
	assert.False(t, check.Passed)
	assert.Zero(t, check.Score)
	assert.Contains(t, check.Details, "suspicious age")

	fields[extract.FieldDateOfBirth] = "2030-01-01" // future birth, negative age
	report, err = ScoreFields(fields, domain.DocTypeCIN, evalTime)
	require.NoError(t, err)
	assert.False(t, report.Checks["date_of_birth"].Passed)
}

func TestScoreFields_CIN_IssueDateNotInFuture(t *testing.T) {
	fields := validCINFields()
	fields[extract.FieldDateOfIssue] = "2030-01-01"
	report, err := ScoreFields(fields, domain.DocTypeCIN, evalTime)
	require.NoError(t, err)

	check := report.Checks["date_of_issue"]
	assert.False(t, check.Passed)
	assert.Equal(t, "issue date is in the future", check.Details)
}

func TestScoreFields_CIN_MalformedDateFailsNotErrors(t *testing.T) {
	fields := validCINFields()
	fields[extract.FieldDateOfBirth] = "1990-يناير-17"
	report, err := ScoreFields(fields, domain.DocTypeCIN, evalTime)
	require.NoError(t, err)
	assert.False(t, report.Checks["date_of_birth"].Passed)
}

func TestScoreFields_CIN_NamePartialCredit(t *testing.T) {
	fields := validCINFields()
	fields[extract.FieldGivenName] = "MOHAMED" // Latin only
	report, err := ScoreFields(fields, domain.DocTypeCIN, evalTime)
	require.NoError(t, err)

	check := report.Checks["names"]
	assert.False(t, check.Passed)
	assert.Equal(t, 5, check.Score)
	assert.Equal(t, 15, check.MaxScore)
}

func TestScoreFields_CIN_Completeness(t *testing.T) {
	fields := validCINFields()
	delete(fields, extract.FieldGivenName)
	report, err := ScoreFields(fields, domain.DocTypeCIN, evalTime)
	require.NoError(t, err)

	check := report.Checks["completeness"]
	assert.False(t, check.Passed)
	assert.Contains(t, check.Details, extract.FieldGivenName)
}

func TestScoreFields_UnknownDocType(t *testing.T) {
	_, err := ScoreFields(domain.FieldMap{}, domain.DocType("driver_license"), evalTime)
	assert.ErrorIs(t, err, domain.ErrUnknownDocType)
}

func TestDateParsing_OrderedFormats(t *testing.T) {
	for _, raw := range []string{"1990-01-17", "17-01-1990", "17/01/1990", "1990/01/17", "17.01.1990", "1990.01.17"} {
		parsed, ok := parseDate(raw)
		require.True(t, ok, raw)
		assert.Equal(t, 1990, parsed.Year())
		assert.Equal(t, time.January, parsed.Month())
		assert.Equal(t, 17, parsed.Day())
	}
	_, ok := parseDate("17 Jan 1990")
	assert.False(t, ok)
	_, ok = parseDate("")
	assert.False(t, ok)
}

func TestConfidenceLevelTiers(t *testing.T) {
	assert.Equal(t, domain.ConfidenceHigh, confidenceLevel(80))
	assert.Equal(t, domain.ConfidenceMedium, confidenceLevel(79))
	assert.Equal(t, domain.ConfidenceMedium, confidenceLevel(60))
	assert.Equal(t, domain.ConfidenceLow, confidenceLevel(59))
	assert.Equal(t, domain.ConfidenceLow, confidenceLevel(0))
	assert.Equal(t, domain.ConfidenceHigh, confidenceLevel(100))
}
