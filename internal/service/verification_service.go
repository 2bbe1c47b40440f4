package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"veridoc/internal/config"
	"veridoc/internal/container"
	"veridoc/internal/content"
	"veridoc/internal/domain"
	"veridoc/internal/extract"
	"veridoc/internal/layout"
	"veridoc/internal/port"
	"veridoc/internal/quality"
	"veridoc/internal/verify"
)

// UploadedFile is one file received from a multipart request.
type UploadedFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// VerifyImageInput carries the sides of an identity document. Front is
// required; Back is meaningful only for CIN.
type VerifyImageInput struct {
	DocType domain.DocType
	Front   UploadedFile
	Back    *UploadedFile
}

// VerifyPDFInput carries a raw document plus the optional parsed page tree
// produced by the caller's parsing library.
type VerifyPDFInput struct {
	File  UploadedFile
	Pages []content.ParsedPage
}

// VerificationResult is the full outcome of one verification run.
type VerificationResult struct {
	RecordID  uuid.UUID                 `json:"record_id"`
	DocType   domain.DocType            `json:"doc_type"`
	Fields    domain.FieldMap           `json:"fields,omitempty"`
	Conflicts []string                  `json:"conflicts,omitempty"`
	Report    domain.VerificationReport `json:"report"`
	Quality   []string                  `json:"quality,omitempty"`
	Content   *content.Result           `json:"content,omitempty"`
}

// VerificationService runs the verification pipeline and persists the
// outcome.
type VerificationService interface {
	VerifyIdentity(ctx context.Context, userID uuid.UUID, input VerifyImageInput) (*VerificationResult, error)
	VerifyPDF(ctx context.Context, userID uuid.UUID, input VerifyPDFInput) (*VerificationResult, error)
}

type verificationService struct {
	recognizer port.Recognizer
	recordRepo port.RecordRepository
	userRepo   port.UserRepository
	storage    port.ObjectStorage
	email      port.EmailSender
	cfg        *config.Config
}

// NewVerificationService creates a new VerificationService implementation.
func NewVerificationService(
	recognizer port.Recognizer,
	recordRepo port.RecordRepository,
	userRepo port.UserRepository,
	storage port.ObjectStorage,
	email port.EmailSender,
	cfg *config.Config,
) VerificationService {
	return &verificationService{
		recognizer: recognizer,
		recordRepo: recordRepo,
		userRepo:   userRepo,
		storage:    storage,
		email:      email,
		cfg:        cfg,
	}
}

func (s *verificationService) layoutOptions() layout.Options {
	opts := layout.DefaultOptions()
	if s.cfg.OCR.ConfidenceFloor > 0 {
		opts.ConfidenceFloor = s.cfg.OCR.ConfidenceFloor
	}
	if s.cfg.OCR.BandHeight > 0 {
		opts.BandHeight = s.cfg.OCR.BandHeight
	}
	return opts
}

func (s *verificationService) qualityOptions() quality.Options {
	opts := quality.DefaultOptions()
	if s.cfg.Quality.BlurThreshold > 0 {
		opts.BlurThreshold = s.cfg.Quality.BlurThreshold
	}
	if s.cfg.Quality.MinBrightness > 0 {
		opts.MinBrightness = s.cfg.Quality.MinBrightness
	}
	if s.cfg.Quality.MaxBrightness > 0 {
		opts.MaxBrightness = s.cfg.Quality.MaxBrightness
	}
	return opts
}

func (s *verificationService) mergeOptions() content.MergeOptions {
	opts := content.DefaultMergeOptions()
	if s.cfg.Content.MinFlushLen > 0 {
		opts.MinFlushLen = s.cfg.Content.MinFlushLen
	}
	if s.cfg.Content.TerminalPunct != "" {
		opts.TerminalPunct = s.cfg.Content.TerminalPunct
	}
	return opts
}

// processSide runs the quality gate, recognition, and layout reconstruction
// for one side of a document. A quality failure stops the pipeline before
// recognition and surfaces the gate message verbatim.
func (s *verificationService) processSide(ctx context.Context, side string, file UploadedFile, docType domain.DocType) ([]layout.Line, string, error) {
	img, err := quality.Decode(file.Data)
	if err != nil {
		return nil, "", &domain.QualityError{Side: side, Message: err.Error()}
	}

	ok, msg := quality.Check(img, docType, s.qualityOptions())
	if !ok {
		return nil, msg, &domain.QualityError{Side: side, Message: msg}
	}

	tokens, err := s.recognizer.Recognize(ctx, file.Data)
	if err != nil {
		return nil, msg, fmt.Errorf("recognizing %s side: %w", side, err)
	}

	return layout.Reconstruct(tokens, s.layoutOptions()), msg, nil
}

func (s *verificationService) VerifyIdentity(ctx context.Context, userID uuid.UUID, input VerifyImageInput) (*VerificationResult, error) {
	if input.DocType != domain.DocTypeCIN && input.DocType != domain.DocTypePassport {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownDocType, input.DocType)
	}

	var qualityMsgs []string

	frontLines, msg, err := s.processSide(ctx, "front", input.Front, input.DocType)
	if err != nil {
		return nil, err
	}
	qualityMsgs = append(qualityMsgs, "Front: "+msg)

	var backLines []layout.Line
	if input.Back != nil {
		backLines, msg, err = s.processSide(ctx, "back", *input.Back, input.DocType)
		if err != nil {
			return nil, err
		}
		qualityMsgs = append(qualityMsgs, "Back: "+msg)
	}

	var fields domain.FieldMap
	var conflicts []string
	switch input.DocType {
	case domain.DocTypePassport:
		fields = extract.Extract(frontLines, extract.SchemaPassport)
	case domain.DocTypeCIN:
		front := extract.Extract(frontLines, extract.SchemaCINFront)
		back := domain.FieldMap{}
		if input.Back != nil {
			back = extract.Extract(backLines, extract.SchemaCINBack)
		}
		fields, conflicts = extract.MergeSides(front, back)
	}

	report, err := verify.ScoreFields(fields, input.DocType, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("scoring %s: %w", input.DocType, err)
	}

	record := &domain.VerificationRecord{
		ID:            uuid.New(),
		UserID:        userID,
		DocType:       input.DocType,
		FrontFilename: input.Front.Filename,
	}
	if input.Back != nil {
		record.BackFilename = &input.Back.Filename
	}

	if err := s.storeOriginals(ctx, record, input); err != nil {
		return nil, err
	}
	if err := s.persist(ctx, record, fields, report, qualityMsgs, nil); err != nil {
		return nil, err
	}
	s.notify(ctx, userID, report)

	return &VerificationResult{
		RecordID:  record.ID,
		DocType:   input.DocType,
		Fields:    fields,
		Conflicts: conflicts,
		Report:    report,
		Quality:   qualityMsgs,
	}, nil
}

func (s *verificationService) VerifyPDF(ctx context.Context, userID uuid.UUID, input VerifyPDFInput) (*VerificationResult, error) {
	var report domain.VerificationReport
	sig, err := container.Inspect(input.File.Data)
	if err != nil {
		// An unreadable container yields a zero report, not an error: no
		// partial structural signal can be trusted.
		report = verify.ErrorReport(domain.DocTypePDF, fmt.Sprintf("unable to read document: %v", err))
	} else {
		report = verify.ScoreStructural(sig)
	}

	var contentResult *content.Result
	if len(input.Pages) > 0 {
		result := content.BuildResult(input.Pages, s.mergeOptions())
		contentResult = &result
	}

	record := &domain.VerificationRecord{
		ID:            uuid.New(),
		UserID:        userID,
		DocType:       domain.DocTypePDF,
		FrontFilename: input.File.Filename,
	}

	if len(input.File.Data) > 0 {
		key := storageKey(record.ID, input.File.Filename)
		if _, err := s.storage.Upload(ctx, port.UploadInput{
			Bucket:      s.cfg.S3.Bucket,
			Key:         key,
			Body:        bytes.NewReader(input.File.Data),
			ContentType: input.File.ContentType,
			Size:        int64(len(input.File.Data)),
		}); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
		}
		record.StorageKey = key
	}

	if err := s.persist(ctx, record, nil, report, nil, contentResult); err != nil {
		return nil, err
	}
	s.notify(ctx, userID, report)

	return &VerificationResult{
		RecordID: record.ID,
		DocType:  domain.DocTypePDF,
		Report:   report,
		Content:  contentResult,
	}, nil
}

func storageKey(recordID uuid.UUID, filename string) string {
	return fmt.Sprintf("records/%s/%s", recordID, filename)
}

// storeOriginals uploads the document sides under the record's key prefix.
func (s *verificationService) storeOriginals(ctx context.Context, record *domain.VerificationRecord, input VerifyImageInput) error {
	key := storageKey(record.ID, input.Front.Filename)
	if _, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.S3.Bucket,
		Key:         key,
		Body:        bytes.NewReader(input.Front.Data),
		ContentType: input.Front.ContentType,
		Size:        int64(len(input.Front.Data)),
	}); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}
	record.StorageKey = key

	if input.Back != nil {
		if _, err := s.storage.Upload(ctx, port.UploadInput{
			Bucket:      s.cfg.S3.Bucket,
			Key:         storageKey(record.ID, input.Back.Filename),
			Body:        bytes.NewReader(input.Back.Data),
			ContentType: input.Back.ContentType,
			Size:        int64(len(input.Back.Data)),
		}); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
		}
	}
	return nil
}

func (s *verificationService) persist(
	ctx context.Context,
	record *domain.VerificationRecord,
	fields domain.FieldMap,
	report domain.VerificationReport,
	qualityMsgs []string,
	contentResult *content.Result,
) error {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	record.Report = reportJSON

	if fields != nil {
		if record.Fields, err = json.Marshal(fields); err != nil {
			return fmt.Errorf("marshaling fields: %w", err)
		}
	}
	if qualityMsgs != nil {
		if record.Quality, err = json.Marshal(qualityMsgs); err != nil {
			return fmt.Errorf("marshaling quality messages: %w", err)
		}
	}
	if contentResult != nil {
		if record.Content, err = json.Marshal(contentResult); err != nil {
			return fmt.Errorf("marshaling content: %w", err)
		}
	}

	if err := s.recordRepo.Create(ctx, record); err != nil {
		return fmt.Errorf("persisting record: %w", err)
	}
	return nil
}

// notify sends the summary email best-effort; a delivery failure never fails
// the verification itself.
func (s *verificationService) notify(ctx context.Context, userID uuid.UUID, report domain.VerificationReport) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			log.Printf("verification: looking up user %s for notification: %v", userID, err)
		}
		return
	}
	if err := s.email.SendVerificationSummary(ctx, user.Email, user.FullName, report); err != nil {
		log.Printf("verification: sending summary to %s: %v", user.Email, err)
	}
}
