package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/EMBL-EBI-SUBS/file-upload-service/internal/core/domain"
	"github.com/EMBL-EBI-SUBS/file-upload-service/internal/core/port"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type sqlFileRepository struct {
	db SQLQuerier
}

// NewSqlFileRepository creates sqlFileRepository that implements port.FileRepository
func NewSqlFileRepository(db SQLQuerier) port.FileRepository {
	return &sqlFileRepository{
		db: db,
	}
}

// Create creates a new file record. The unique constraints translate into
// domain errors: one record per upload id, one filename per submission.
func (s *sqlFileRepository) Create(ctx context.Context, file domain.File) error {
	query := `INSERT INTO files (id, upload_id, filename, submission_id, total_size, uploaded_size,
	                             upload_path, target_path, status, source, created_by,
	                             upload_started_at, upload_finished_at, validation_result_id,
	                             created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	_, err := s.db.ExecContext(ctx, query,
		file.ID,
		file.UploadID,
		file.Filename,
		file.SubmissionID,
		file.TotalSize,
		file.UploadedSize,
		file.UploadPath,
		file.TargetPath,
		file.Status,
		file.Source,
		file.CreatedBy,
		file.UploadStartedAt,
		file.UploadFinishedAt,
		file.ValidationResultID,
		file.CreatedAt,
		file.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			if pqErr.Constraint == "files_filename_submission_key" {
				return fmt.Errorf("file %s in submission %s: %w", file.Filename, file.SubmissionID, domain.ErrDuplicateFile)
			}
			return fmt.Errorf("upload %s: %w", file.UploadID, domain.ErrAlreadyExists)
		}
		return fmt.Errorf("error inserting file record: %w", err)
	}
	return nil
}

// FindByUploadID finds the record for an upload id
func (s *sqlFileRepository) FindByUploadID(ctx context.Context, uploadID string) (*domain.File, error) {
	query := selectFileQuery + ` WHERE upload_id = $1`

	return s.scanOne(s.db.QueryRowContext(ctx, query, uploadID))
}

// FindByFilenameAndSubmissionID finds the record registered under a filename
// within a submission
func (s *sqlFileRepository) FindByFilenameAndSubmissionID(ctx context.Context, filename, submissionID string) (*domain.File, error) {
	query := selectFileQuery + ` WHERE filename = $1 AND submission_id = $2`

	return s.scanOne(s.db.QueryRowContext(ctx, query, filename, submissionID))
}

// Update persists the mutable fields of a file record
func (s *sqlFileRepository) Update(ctx context.Context, file domain.File) error {
	query := `UPDATE files
	          SET total_size = $1, uploaded_size = $2, upload_path = $3, target_path = $4,
	              status = $5, upload_started_at = $6, upload_finished_at = $7,
	              validation_result_id = $8, updated_at = now()
	          WHERE upload_id = $9`

	result, err := s.db.ExecContext(ctx, query,
		file.TotalSize,
		file.UploadedSize,
		file.UploadPath,
		file.TargetPath,
		file.Status,
		file.UploadStartedAt,
		file.UploadFinishedAt,
		file.ValidationResultID,
		file.UploadID,
	)
	if err != nil {
		return fmt.Errorf("error updating file record: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrFileNotFound
	}

	return nil
}

// Delete removes the record for an upload id
func (s *sqlFileRepository) Delete(ctx context.Context, uploadID string) error {
	query := `DELETE FROM files WHERE upload_id = $1`

	result, err := s.db.ExecContext(ctx, query, uploadID)
	if err != nil {
		return fmt.Errorf("error deleting file record: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrFileNotFound
	}

	return nil
}

const selectFileQuery = `SELECT id, upload_id, filename, submission_id, total_size, uploaded_size,
                                upload_path, target_path, status, source, created_by,
                                upload_started_at, upload_finished_at, validation_result_id,
                                created_at, updated_at
                         FROM files`

func (s *sqlFileRepository) scanOne(row *sql.Row) (*domain.File, error) {
	var dbFile dbFile
	err := row.Scan(
		&dbFile.ID,
		&dbFile.UploadID,
		&dbFile.Filename,
		&dbFile.SubmissionID,
		&dbFile.TotalSize,
		&dbFile.UploadedSize,
		&dbFile.UploadPath,
		&dbFile.TargetPath,
		&dbFile.Status,
		&dbFile.Source,
		&dbFile.CreatedBy,
		&dbFile.UploadStartedAt,
		&dbFile.UploadFinishedAt,
		&dbFile.ValidationResultID,
		&dbFile.CreatedAt,
		&dbFile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrFileNotFound
		}
		return nil, err
	}

	return dbFile.ToDomain(), nil
}

// dbFile represents a file record in DB
type dbFile struct {
	ID                 uuid.UUID    `db:"id"`
	UploadID           string       `db:"upload_id"`
	Filename           string       `db:"filename"`
	SubmissionID       string       `db:"submission_id"`
	TotalSize          int64        `db:"total_size"`
	UploadedSize       int64        `db:"uploaded_size"`
	UploadPath         string       `db:"upload_path"`
	TargetPath         string       `db:"target_path"`
	Status             string       `db:"status"`
	Source             string       `db:"source"`
	CreatedBy          string       `db:"created_by"`
	UploadStartedAt    sql.NullTime `db:"upload_started_at"`
	UploadFinishedAt   sql.NullTime `db:"upload_finished_at"`
	ValidationResultID string       `db:"validation_result_id"`
	CreatedAt          time.Time    `db:"created_at"`
	UpdatedAt          time.Time    `db:"updated_at"`
}

// ToDomain converts to domain.File
func (f *dbFile) ToDomain() *domain.File {
	file := &domain.File{
		ID:                 f.ID,
		UploadID:           f.UploadID,
		Filename:           f.Filename,
		SubmissionID:       f.SubmissionID,
		TotalSize:          f.TotalSize,
		UploadedSize:       f.UploadedSize,
		UploadPath:         f.UploadPath,
		TargetPath:         f.TargetPath,
		Status:             domain.FileStatus(f.Status),
		Source:             domain.FileSource(f.Source),
		CreatedBy:          f.CreatedBy,
		ValidationResultID: f.ValidationResultID,
		CreatedAt:          f.CreatedAt,
		UpdatedAt:          f.UpdatedAt,
	}
	if f.UploadStartedAt.Valid {
		file.UploadStartedAt = &f.UploadStartedAt.Time
	}
	if f.UploadFinishedAt.Valid {
		file.UploadFinishedAt = &f.UploadFinishedAt.Time
	}
	return file
}
