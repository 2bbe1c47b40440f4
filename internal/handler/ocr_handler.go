package handler

import (
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"veridoc/internal/content"
	"veridoc/internal/domain"
	"veridoc/internal/service"
)

// OCRHandler handles document verification endpoints.
type OCRHandler struct {
	verificationService service.VerificationService
	maxFileSizeBytes    int64
}

// NewOCRHandler creates a new OCRHandler.
func NewOCRHandler(verificationService service.VerificationService, maxFileSizeMB int64) *OCRHandler {
	return &OCRHandler{
		verificationService: verificationService,
		maxFileSizeBytes:    maxFileSizeMB * 1024 * 1024,
	}
}

// VerifyCIN handles POST /api/v1/ocr/cin
// Accepts multipart form data with a required "front" image and an optional
// "back" image of a national identity card.
func (h *OCRHandler) VerifyCIN(c *gin.Context) {
	h.verifyIdentity(c, domain.DocTypeCIN)
}

// VerifyPassport handles POST /api/v1/ocr/passport
// Accepts multipart form data with a required "front" image of the passport
// data page.
func (h *OCRHandler) VerifyPassport(c *gin.Context) {
	h.verifyIdentity(c, domain.DocTypePassport)
}

func (h *OCRHandler) verifyIdentity(c *gin.Context, docType domain.DocType) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	front, ok := h.readUpload(c, "front", true)
	if !ok {
		return
	}
	back, ok := h.readUpload(c, "back", false)
	if !ok {
		return
	}

	input := service.VerifyImageInput{
		DocType: docType,
		Front:   *front,
		Back:    back,
	}

	result, err := h.verificationService.VerifyIdentity(c.Request.Context(), userID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, result)
}

// VerifyPDF handles POST /api/v1/ocr/pdf
// Accepts multipart form data with a required "file" PDF and an optional
// "pages" field holding the parsed page tree as JSON.
func (h *OCRHandler) VerifyPDF(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	file, ok := h.readUpload(c, "file", true)
	if !ok {
		return
	}
	if fileType(file.Filename, file.ContentType) != domain.FileTypePDF {
		RespondError(c, http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "pdf file required")
		return
	}

	var pages []content.ParsedPage
	if raw := c.PostForm("pages"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &pages); err != nil {
			RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "pages field is not valid JSON: "+err.Error())
			return
		}
	}

	result, err := h.verificationService.VerifyPDF(c.Request.Context(), userID, service.VerifyPDFInput{
		File:  *file,
		Pages: pages,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, result)
}

// readUpload pulls one multipart file field into memory, enforcing the file
// type whitelist and size limit. The bool return reports whether the caller
// can proceed; an error response has already been written otherwise.
func (h *OCRHandler) readUpload(c *gin.Context, field string, required bool) (*service.UploadedFile, bool) {
	file, header, err := c.Request.FormFile(field)
	if err != nil {
		if required {
			RespondError(c, http.StatusBadRequest, "MISSING_FILE", field+" field is required")
			return nil, false
		}
		return nil, true
	}
	defer func() { _ = file.Close() }()

	if fileType(header.Filename, headerContentType(header)) == "" {
		RespondError(c, http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "unsupported file type; allowed: pdf, jpg, png")
		return nil, false
	}
	if header.Size > h.maxFileSizeBytes {
		RespondError(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size")
		return nil, false
	}

	data, err := io.ReadAll(io.LimitReader(file, h.maxFileSizeBytes+1))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "READ_FAILED", "failed to read uploaded file")
		return nil, false
	}
	if int64(len(data)) > h.maxFileSizeBytes {
		RespondError(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size")
		return nil, false
	}

	return &service.UploadedFile{
		Filename:    header.Filename,
		ContentType: headerContentType(header),
		Data:        data,
	}, true
}

func headerContentType(header *multipart.FileHeader) string {
	ct := header.Header.Get("Content-Type")
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = ct[:i]
	}
	return strings.TrimSpace(ct)
}

// fileType resolves the domain file type from the content type, falling back
// to the filename extension when the client sent a generic content type.
func fileType(filename, contentType string) domain.FileType {
	if ft, ok := domain.AllowedContentTypes[strings.ToLower(contentType)]; ok {
		return ft
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	return domain.AllowedExtensions[ext]
}
