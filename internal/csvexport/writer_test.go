package csvexport

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veridoc/internal/domain"
)

func TestWriteHeader(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteHeader())
	w.Flush()
	require.NoError(t, w.Error())

	r := csv.NewReader(&buf)
	row, err := r.Read()
	require.NoError(t, err)

	assert.Equal(t, "Record ID", row[0])
	assert.Equal(t, "Document Type", row[1])
	assert.Equal(t, "Overall Score", row[4])
	assert.Contains(t, row, "Passport Number")
	assert.Contains(t, row, "Date Of Birth")
	assert.Equal(t, "Created At", row[len(row)-1])
}

func sampleRecord(t *testing.T) domain.VerificationRecord {
	t.Helper()

	fields, err := json.Marshal(domain.FieldMap{
		"national_id":   "12345678",
		"given_name":    "محمد",
		"family_name":   "الهاشمي",
		"date_of_birth": "1990-01-17",
	})
	require.NoError(t, err)

	report, err := json.Marshal(domain.VerificationReport{
		OverallScore:    85,
		IsAuthentic:     true,
		ConfidenceLevel: domain.ConfidenceHigh,
		DocType:         domain.DocTypeCIN,
		Checks: map[string]domain.VerificationCheck{
			"national_id_format": {Name: "national_id_format", Passed: true, Score: 20, MaxScore: 20},
			"address":            {Name: "address", Passed: false, Score: 0, MaxScore: 10},
			"names":              {Name: "names", Passed: false, Score: 5, MaxScore: 15},
		},
	})
	require.NoError(t, err)

	back := "cin_back.jpg"
	return domain.VerificationRecord{
		ID:            uuid.New(),
		UserID:        uuid.New(),
		DocType:       domain.DocTypeCIN,
		FrontFilename: "cin_front.jpg",
		BackFilename:  &back,
		Fields:        fields,
		Report:        report,
		CreatedAt:     time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestWriteRecords(t *testing.T) {
	record := sampleRecord(t)

	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.WriteRecords([]domain.VerificationRecord{record}))
	w.Flush()
	require.NoError(t, w.Error())

	r := csv.NewReader(&buf)
	rows, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	header, row := rows[0], rows[1]
	byName := map[string]string{}
	for i, h := range header {
		byName[h] = row[i]
	}

	assert.Equal(t, record.ID.String(), byName["Record ID"])
	assert.Equal(t, "cin", byName["Document Type"])
	assert.Equal(t, "cin_back.jpg", byName["Back Filename"])
	assert.Equal(t, "85", byName["Overall Score"])
	assert.Equal(t, "Yes", byName["Authentic"])
	assert.Equal(t, "high", byName["Confidence"])
	assert.Equal(t, "12345678", byName["National Id"])
	assert.Equal(t, "محمد", byName["Given Name"])
	assert.Equal(t, "1990-01-17", byName["Date Of Birth"])
	assert.Equal(t, "", byName["Passport Number"])
	assert.Equal(t, "address; names", byName["Failed Checks"])
	assert.Equal(t, "2026-02-01T10:00:00Z", byName["Created At"])
}

func TestWriteRecords_MalformedJSONLeavesColumnsEmpty(t *testing.T) {
	record := sampleRecord(t)
	record.Fields = json.RawMessage(`{broken`)
	record.Report = json.RawMessage(`[1,2]`)

	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteRecords([]domain.VerificationRecord{record}))
	w.Flush()

	r := csv.NewReader(&buf)
	rows, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, record.ID.String(), row[0])
	assert.Equal(t, "", row[4])
	assert.Equal(t, "", row[7])
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "my_records", SanitizeFilename("my records!"))
	assert.Equal(t, "a-b_c", SanitizeFilename("a-b  c"))
	assert.Equal(t, "trimmed", SanitizeFilename("__trimmed__"))
}

func TestBuildFilename(t *testing.T) {
	name := BuildFilename("CIN batch #1", "csv")
	assert.Regexp(t, `^CIN_batch_1_\d{4}-\d{2}-\d{2}\.csv$`, name)
}
