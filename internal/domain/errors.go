package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUserInactive        = errors.New("user is inactive")
	ErrDuplicateEmail      = errors.New("email already exists")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed        = errors.New("file upload to storage failed")
	ErrUnknownDocType      = errors.New("unknown document type")
)

// QualityError reports an image that failed the pre-extraction quality gate.
// The gate message is surfaced to the caller verbatim.
type QualityError struct {
	Side    string // "front" or "back"
	Message string
}

func (e *QualityError) Error() string {
	return fmt.Sprintf("quality gate rejected %s image: %s", e.Side, e.Message)
}
