package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"veridoc/internal/config"
	"veridoc/internal/csvexport"
	"veridoc/internal/domain"
	"veridoc/internal/port"
)

// RecordService exposes stored verification records and their exports.
// Every method takes the caller's scope: admins pass uuid.Nil as scopeUserID
// to operate across all users.
type RecordService interface {
	Get(ctx context.Context, scopeUserID, recordID uuid.UUID) (*domain.VerificationRecord, error)
	List(ctx context.Context, scopeUserID uuid.UUID, offset, limit int) ([]domain.VerificationRecord, int, error)
	Delete(ctx context.Context, scopeUserID, recordID uuid.UUID) error
	FileURL(ctx context.Context, scopeUserID, recordID uuid.UUID) (string, error)
	ExportCSV(ctx context.Context, w io.Writer, records []domain.VerificationRecord) error
	ExportXLSX(ctx context.Context, records []domain.VerificationRecord) ([]byte, error)
}

type recordService struct {
	recordRepo port.RecordRepository
	storage    port.ObjectStorage
	cfg        *config.Config
}

// NewRecordService creates a new RecordService implementation.
func NewRecordService(recordRepo port.RecordRepository, storage port.ObjectStorage, cfg *config.Config) RecordService {
	return &recordService{
		recordRepo: recordRepo,
		storage:    storage,
		cfg:        cfg,
	}
}

func (s *recordService) Get(ctx context.Context, scopeUserID, recordID uuid.UUID) (*domain.VerificationRecord, error) {
	return s.recordRepo.GetByID(ctx, scopeUserID, recordID)
}

func (s *recordService) List(ctx context.Context, scopeUserID uuid.UUID, offset, limit int) ([]domain.VerificationRecord, int, error) {
	return s.recordRepo.ListByUser(ctx, scopeUserID, offset, limit)
}

func (s *recordService) Delete(ctx context.Context, scopeUserID, recordID uuid.UUID) error {
	record, err := s.recordRepo.GetByID(ctx, scopeUserID, recordID)
	if err != nil {
		return err
	}
	if record.StorageKey != "" {
		if err := s.storage.Delete(ctx, s.cfg.S3.Bucket, record.StorageKey); err != nil {
			return fmt.Errorf("deleting stored file: %w", err)
		}
	}
	return s.recordRepo.Delete(ctx, scopeUserID, recordID)
}

func (s *recordService) FileURL(ctx context.Context, scopeUserID, recordID uuid.UUID) (string, error) {
	record, err := s.recordRepo.GetByID(ctx, scopeUserID, recordID)
	if err != nil {
		return "", err
	}
	if record.StorageKey == "" {
		return "", domain.ErrNotFound
	}
	return s.storage.GetPresignedURL(ctx, s.cfg.S3.Bucket, record.StorageKey, s.cfg.S3.PresignExpiry)
}

func (s *recordService) ExportCSV(ctx context.Context, w io.Writer, records []domain.VerificationRecord) error {
	if _, err := w.Write(csvexport.BOM); err != nil {
		return fmt.Errorf("writing BOM: %w", err)
	}
	writer := csvexport.NewWriter(w)
	if err := writer.WriteHeader(); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := writer.WriteRecords(records); err != nil {
		return fmt.Errorf("writing records: %w", err)
	}
	writer.Flush()
	return writer.Error()
}

// xlsxColumns is the worksheet header row.
var xlsxColumns = []string{
	"Record ID", "Document Type", "Front Filename", "Back Filename",
	"Overall Score", "Authentic", "Confidence", "Failed Checks", "Created At",
}

func (s *recordService) ExportXLSX(ctx context.Context, records []domain.VerificationRecord) ([]byte, error) {
	f := excelize.NewFile()
	const sheet = "Verifications"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("creating sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("removing default sheet: %w", err)
	}

	for i, h := range xlsxColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("writing header: %w", err)
		}
	}

	for rowIdx := range records {
		record := &records[rowIdx]
		row := rowIdx + 2

		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, record.ID.String())
		write(2, string(record.DocType))
		write(3, record.FrontFilename)
		if record.BackFilename != nil {
			write(4, *record.BackFilename)
		}
		if len(record.Report) > 0 {
			var report domain.VerificationReport
			if err := json.Unmarshal(record.Report, &report); err == nil {
				write(5, report.OverallScore)
				write(6, report.IsAuthentic)
				write(7, string(report.ConfidenceLevel))
				var failed []string
				for name, check := range report.Checks {
					if !check.Passed {
						failed = append(failed, name)
					}
				}
				write(8, joinSorted(failed))
			}
		}
		write(9, record.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	_ = f.SetColWidth(sheet, "A", "A", 38)
	_ = f.SetColWidth(sheet, "B", "D", 18)
	_ = f.SetColWidth(sheet, "H", "H", 32)
	_ = f.SetColWidth(sheet, "I", "I", 20)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func joinSorted(items []string) string {
	sort.Strings(items)
	return strings.Join(items, "; ")
}
