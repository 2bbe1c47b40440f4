package domain

// DocType identifies the kind of document a verification record covers.
type DocType string

const (
	DocTypeCIN      DocType = "cin"
	DocTypePassport DocType = "passport"
	DocTypePDF      DocType = "pdf"
)

// ValidDocTypes lists the document types accepted by the upload endpoints.
var ValidDocTypes = map[DocType]bool{
	DocTypeCIN:      true,
	DocTypePassport: true,
	DocTypePDF:      true,
}

// ConfidenceLevel buckets an overall verification score.
type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "high"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceLow    ConfidenceLevel = "low"
)

// UserRole defines the role hierarchy.
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleMember UserRole = "member"
)

// FileType represents the allowed file types for upload.
type FileType string

const (
	FileTypePDF FileType = "pdf"
	FileTypeJPG FileType = "jpg"
	FileTypePNG FileType = "png"
)

// AllowedContentTypes maps MIME content types back to FileType.
var AllowedContentTypes = map[string]FileType{
	"application/pdf": FileTypePDF,
	"image/jpeg":      FileTypeJPG,
	"image/png":       FileTypePNG,
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf":  FileTypePDF,
	"jpg":  FileTypeJPG,
	"jpeg": FileTypeJPG,
	"png":  FileTypePNG,
}
