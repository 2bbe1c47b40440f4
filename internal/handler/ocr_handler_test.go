package handler_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"veridoc/internal/domain"
	"veridoc/internal/handler"
	"veridoc/internal/middleware"
	"veridoc/internal/service"
	"veridoc/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setAuthContext(c *gin.Context, userID uuid.UUID, role string) {
	c.Set(middleware.ContextKeyUserID, userID)
	c.Set(middleware.ContextKeyRole, role)
	c.Set(middleware.ContextKeyEmail, "user@test.com")
}

func multipartBody(t *testing.T, files map[string][]byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for field, data := range files {
		part, err := writer.CreateFormFile(field, field+".png")
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	for field, value := range fields {
		require.NoError(t, writer.WriteField(field, value))
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestOCRHandler_VerifyCIN_Success(t *testing.T) {
	mockSvc := new(mocks.MockVerificationService)
	h := handler.NewOCRHandler(mockSvc, 10)

	userID := uuid.New()
	expected := &service.VerificationResult{
		RecordID: uuid.New(),
		DocType:  domain.DocTypeCIN,
		Report:   domain.VerificationReport{OverallScore: 90, IsAuthentic: true},
	}
	mockSvc.On("VerifyIdentity", mock.Anything, userID,
		mock.MatchedBy(func(in service.VerifyImageInput) bool {
			return in.DocType == domain.DocTypeCIN && in.Front.Filename == "front.png" && in.Back != nil
		})).Return(expected, nil)

	body, contentType := multipartBody(t, map[string][]byte{
		"front": []byte("front image bytes"),
		"back":  []byte("back image bytes"),
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/ocr/cin", body)
	c.Request.Header.Set("Content-Type", contentType)
	setAuthContext(c, userID, "member")

	h.VerifyCIN(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	mockSvc.AssertExpectations(t)
}

func TestOCRHandler_VerifyCIN_MissingFront(t *testing.T) {
	mockSvc := new(mocks.MockVerificationService)
	h := handler.NewOCRHandler(mockSvc, 10)

	body, contentType := multipartBody(t, map[string][]byte{"back": []byte("x")}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/ocr/cin", body)
	c.Request.Header.Set("Content-Type", contentType)
	setAuthContext(c, uuid.New(), "member")

	h.VerifyCIN(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "VerifyIdentity", mock.Anything, mock.Anything, mock.Anything)
}

func TestOCRHandler_VerifyPassport_QualityRejection(t *testing.T) {
	mockSvc := new(mocks.MockVerificationService)
	h := handler.NewOCRHandler(mockSvc, 10)

	mockSvc.On("VerifyIdentity", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, &domain.QualityError{Side: "front", Message: "image too blurry (score: 12.50)"})

	body, contentType := multipartBody(t, map[string][]byte{"front": []byte("blurry")}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/ocr/passport", body)
	c.Request.Header.Set("Content-Type", contentType)
	setAuthContext(c, uuid.New(), "member")

	h.VerifyPassport(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "IMAGE_QUALITY_REJECTED", resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "image too blurry")
}

func TestOCRHandler_VerifyPDF_WrongFileType(t *testing.T) {
	mockSvc := new(mocks.MockVerificationService)
	h := handler.NewOCRHandler(mockSvc, 10)

	// "file.png" is a valid upload type but not a PDF.
	body, contentType := multipartBody(t, map[string][]byte{"file": []byte("png bytes")}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/ocr/pdf", body)
	c.Request.Header.Set("Content-Type", contentType)
	setAuthContext(c, uuid.New(), "member")

	h.VerifyPDF(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "VerifyPDF", mock.Anything, mock.Anything, mock.Anything)
}

func TestOCRHandler_VerifyPDF_WithPages(t *testing.T) {
	mockSvc := new(mocks.MockVerificationService)
	h := handler.NewOCRHandler(mockSvc, 10)

	userID := uuid.New()
	expected := &service.VerificationResult{RecordID: uuid.New(), DocType: domain.DocTypePDF}
	mockSvc.On("VerifyPDF", mock.Anything, userID,
		mock.MatchedBy(func(in service.VerifyPDFInput) bool {
			return len(in.Pages) == 1 && in.Pages[0].Number == 1
		})).Return(expected, nil)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "doc.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4 content"))
	require.NoError(t, err)
	require.NoError(t, writer.WriteField("pages", `[{"pageNumber":1,"textBlocks":[],"tables":[],"images":[]}]`))
	require.NoError(t, writer.Close())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/ocr/pdf", body)
	c.Request.Header.Set("Content-Type", writer.FormDataContentType())
	setAuthContext(c, userID, "member")

	h.VerifyPDF(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestOCRHandler_VerifyPDF_BadPagesJSON(t *testing.T) {
	mockSvc := new(mocks.MockVerificationService)
	h := handler.NewOCRHandler(mockSvc, 10)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, _ := writer.CreateFormFile("file", "doc.pdf")
	_, _ = part.Write([]byte("%PDF-1.4"))
	require.NoError(t, writer.WriteField("pages", "{not json"))
	require.NoError(t, writer.Close())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/ocr/pdf", body)
	c.Request.Header.Set("Content-Type", writer.FormDataContentType())
	setAuthContext(c, uuid.New(), "member")

	h.VerifyPDF(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
