package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"veridoc/internal/csvexport"
	"veridoc/internal/domain"
	"veridoc/internal/service"
)

// exportBatchLimit caps how many records a single export request can pull.
const exportBatchLimit = 10000

// RecordHandler handles stored verification record endpoints.
type RecordHandler struct {
	recordService service.RecordService
}

// NewRecordHandler creates a new RecordHandler.
func NewRecordHandler(recordService service.RecordService) *RecordHandler {
	return &RecordHandler{recordService: recordService}
}

// scope returns the user scope for repository queries: admins see every
// record, members only their own.
func scope(userID uuid.UUID, role domain.UserRole) uuid.UUID {
	if role == domain.RoleAdmin {
		return uuid.Nil
	}
	return userID
}

// List handles GET /api/v1/records
func (h *RecordHandler) List(c *gin.Context) {
	userID, role, ok := extractAuthContext(c)
	if !ok {
		return
	}

	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	records, total, err := h.recordService.List(c.Request.Context(), scope(userID, role), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, records, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/records/:id
func (h *RecordHandler) GetByID(c *gin.Context) {
	userID, role, ok := extractAuthContext(c)
	if !ok {
		return
	}

	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid record ID")
		return
	}

	record, err := h.recordService.Get(c.Request.Context(), scope(userID, role), recordID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, record)
}

// GetFileURL handles GET /api/v1/records/:id/file
// Returns a presigned URL for the stored original document.
func (h *RecordHandler) GetFileURL(c *gin.Context) {
	userID, role, ok := extractAuthContext(c)
	if !ok {
		return
	}

	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid record ID")
		return
	}

	url, err := h.recordService.FileURL(c.Request.Context(), scope(userID, role), recordID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"download_url": url})
}

// Delete handles DELETE /api/v1/records/:id
func (h *RecordHandler) Delete(c *gin.Context) {
	userID, role, ok := extractAuthContext(c)
	if !ok {
		return
	}

	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid record ID")
		return
	}

	if err := h.recordService.Delete(c.Request.Context(), scope(userID, role), recordID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "record deleted"})
}

// ExportCSV handles GET /api/v1/records/export/csv
func (h *RecordHandler) ExportCSV(c *gin.Context) {
	records, ok := h.exportBatch(c)
	if !ok {
		return
	}

	filename := csvexport.BuildFilename("verifications", "csv")
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Status(http.StatusOK)

	if err := h.recordService.ExportCSV(c.Request.Context(), c.Writer, records); err != nil {
		// Headers are already out; nothing sensible left to send.
		_ = c.Error(err)
	}
}

// ExportXLSX handles GET /api/v1/records/export/xlsx
func (h *RecordHandler) ExportXLSX(c *gin.Context) {
	records, ok := h.exportBatch(c)
	if !ok {
		return
	}

	data, err := h.recordService.ExportXLSX(c.Request.Context(), records)
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := csvexport.BuildFilename("verifications", "xlsx")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func (h *RecordHandler) exportBatch(c *gin.Context) ([]domain.VerificationRecord, bool) {
	userID, role, ok := extractAuthContext(c)
	if !ok {
		return nil, false
	}

	records, _, err := h.recordService.List(c.Request.Context(), scope(userID, role), 0, exportBatchLimit)
	if err != nil {
		HandleError(c, err)
		return nil, false
	}
	return records, true
}
