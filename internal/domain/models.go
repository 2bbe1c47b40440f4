package domain

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FieldMap is the flat field-name → value mapping produced by extraction.
// A missing key means the field was not found; values are never empty-filled.
type FieldMap map[string]string

// Get returns the trimmed value for a field, or "" when absent.
func (m FieldMap) Get(name string) string {
	return strings.TrimSpace(m[name])
}

// VerificationCheck is a single scored rubric check inside a report.
type VerificationCheck struct {
	Name     string `json:"name"`
	Passed   bool   `json:"passed"`
	Score    int    `json:"score"`
	MaxScore int    `json:"maxScore"`
	Details  string `json:"details"`
}

// VerificationReport is the normalized authenticity report for one document.
// The JSON shape is shared by the field-based and structural scoring paths so
// a single downstream renderer can handle every document type.
type VerificationReport struct {
	OverallScore    int                          `json:"overallScore"`
	IsAuthentic     bool                         `json:"isAuthentic"`
	ConfidenceLevel ConfidenceLevel              `json:"confidenceLevel"`
	Checks          map[string]VerificationCheck `json:"checks"`
	DocType         DocType                      `json:"docType"`
}

// User represents an authenticated user.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"full_name"`
	Role         UserRole  `db:"role" json:"role"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// VerificationRecord is the persisted outcome of one verification run.
// Fields holds the extracted FieldMap for identity documents; Content holds
// the reconstructed page tree for pdf records. Both are stored as JSONB.
type VerificationRecord struct {
	ID            uuid.UUID       `db:"id" json:"id"`
	UserID        uuid.UUID       `db:"user_id" json:"user_id"`
	DocType       DocType         `db:"doc_type" json:"doc_type"`
	FrontFilename string          `db:"front_filename" json:"front_filename"`
	BackFilename  *string         `db:"back_filename" json:"back_filename,omitempty"`
	StorageKey    string          `db:"storage_key" json:"storage_key"`
	Fields        json.RawMessage `db:"fields" json:"fields,omitempty"`
	Report        json.RawMessage `db:"report" json:"report"`
	Quality       json.RawMessage `db:"quality" json:"quality,omitempty"`
	Content       json.RawMessage `db:"content" json:"content,omitempty"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
}
