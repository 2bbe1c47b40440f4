package csvexport

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"veridoc/internal/domain"
	"veridoc/internal/extract"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// fieldColumns is the fixed subset of extracted fields exported as columns,
// in header order. The FieldMap is flat by contract, so export needs no
// per-schema logic; fields a schema never produces are simply empty.
var fieldColumns = []string{
	extract.FieldPassportNumber,
	extract.FieldNationalID,
	extract.FieldFamilyName,
	extract.FieldGivenName,
	extract.FieldFatherName,
	extract.FieldArabicName,
	extract.FieldDateOfBirth,
	extract.FieldDateOfIssue,
	extract.FieldDateOfExpiry,
	extract.FieldPlaceOfBirth,
	extract.FieldAddress,
	extract.FieldProfession,
	extract.FieldNationality,
	extract.FieldGender,
}

// columns defines the CSV header row.
var columns = buildColumns()

func buildColumns() []string {
	cols := []string{
		"Record ID",
		"Document Type",
		"Front Filename",
		"Back Filename",
		"Overall Score",
		"Authentic",
		"Confidence",
	}
	for _, f := range fieldColumns {
		cols = append(cols, headerName(f))
	}
	cols = append(cols, "Failed Checks", "Created At")
	return cols
}

// headerName turns a field key like "date_of_birth" into "Date Of Birth".
func headerName(field string) string {
	parts := strings.Split(field, "_")
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, " ")
}

// Writer wraps csv.Writer for exporting verification records as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteRecords converts a batch of verification records to CSV rows and
// writes them.
func (w *Writer) WriteRecords(records []domain.VerificationRecord) error {
	for i := range records {
		row := recordToRow(&records[i])
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// recordToRow converts one record to a row. Metadata columns are always
// filled; report and field columns are left empty when the stored JSON does
// not parse.
func recordToRow(record *domain.VerificationRecord) []string {
	row := make([]string, len(columns))

	row[0] = record.ID.String()
	row[1] = string(record.DocType)
	row[2] = record.FrontFilename
	if record.BackFilename != nil {
		row[3] = *record.BackFilename
	}
	row[len(row)-1] = record.CreatedAt.Format(time.RFC3339)

	if len(record.Report) > 0 {
		var report domain.VerificationReport
		if err := json.Unmarshal(record.Report, &report); err == nil {
			row[4] = strconv.Itoa(report.OverallScore)
			row[5] = formatBool(report.IsAuthentic)
			row[6] = string(report.ConfidenceLevel)
			row[len(row)-2] = failedChecks(report)
		}
	}

	if len(record.Fields) > 0 {
		var fields domain.FieldMap
		if err := json.Unmarshal(record.Fields, &fields); err == nil {
			for i, f := range fieldColumns {
				row[7+i] = fields.Get(f)
			}
		}
	}

	return row
}

// failedChecks renders failing check names as a stable semicolon-joined list.
func failedChecks(report domain.VerificationReport) string {
	var failed []string
	for name, check := range report.Checks {
		if !check.Passed {
			failed = append(failed, name)
		}
	}
	sort.Strings(failed)
	return strings.Join(failed, "; ")
}

func formatBool(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for the Content-Disposition
// header. Format: {sanitized_name}_{YYYY-MM-DD}.{ext}
func BuildFilename(name, ext string) string {
	sanitized := SanitizeFilename(name)
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_%s.%s", sanitized, date, ext)
}
