package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"veridoc/internal/domain"
	"veridoc/internal/port"
)

type recordRepo struct {
	db *sqlx.DB
}

// NewRecordRepo creates a new PostgreSQL-backed RecordRepository.
func NewRecordRepo(db *sqlx.DB) port.RecordRepository {
	return &recordRepo{db: db}
}

func (r *recordRepo) Create(ctx context.Context, record *domain.VerificationRecord) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	record.CreatedAt = time.Now().UTC()

	query := `INSERT INTO verification_records
		(id, user_id, doc_type, front_filename, back_filename, storage_key, fields, report, quality, content, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.ExecContext(ctx, query,
		record.ID, record.UserID, record.DocType, record.FrontFilename, record.BackFilename,
		record.StorageKey, record.Fields, record.Report, record.Quality, record.Content,
		record.CreatedAt)
	if err != nil {
		return fmt.Errorf("recordRepo.Create: %w", err)
	}
	return nil
}

func (r *recordRepo) GetByID(ctx context.Context, userID, recordID uuid.UUID) (*domain.VerificationRecord, error) {
	var record domain.VerificationRecord
	var err error
	if userID == uuid.Nil {
		err = r.db.GetContext(ctx, &record,
			"SELECT * FROM verification_records WHERE id = $1", recordID)
	} else {
		err = r.db.GetContext(ctx, &record,
			"SELECT * FROM verification_records WHERE id = $1 AND user_id = $2", recordID, userID)
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("recordRepo.GetByID: %w", err)
	}
	return &record, nil
}

func (r *recordRepo) ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.VerificationRecord, int, error) {
	countQuery := "SELECT COUNT(*) FROM verification_records"
	listQuery := "SELECT * FROM verification_records ORDER BY created_at DESC LIMIT $1 OFFSET $2"
	countArgs := []any{}
	listArgs := []any{limit, offset}
	if userID != uuid.Nil {
		countQuery = "SELECT COUNT(*) FROM verification_records WHERE user_id = $1"
		listQuery = "SELECT * FROM verification_records WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3"
		countArgs = []any{userID}
		listArgs = []any{userID, limit, offset}
	}

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("recordRepo.ListByUser count: %w", err)
	}

	var records []domain.VerificationRecord
	if err := r.db.SelectContext(ctx, &records, listQuery, listArgs...); err != nil {
		return nil, 0, fmt.Errorf("recordRepo.ListByUser: %w", err)
	}
	return records, total, nil
}

func (r *recordRepo) Delete(ctx context.Context, userID, recordID uuid.UUID) error {
	query := "DELETE FROM verification_records WHERE id = $1 AND user_id = $2"
	args := []any{recordID, userID}
	if userID == uuid.Nil {
		query = "DELETE FROM verification_records WHERE id = $1"
		args = []any{recordID}
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("recordRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
