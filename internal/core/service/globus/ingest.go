package globus

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/EMBL-EBI-SUBS/file-upload-service/internal/core/domain"

	"github.com/google/uuid"
)

// ProcessUploadedFiles ingests files the owner transferred through the shared
// endpoint. Each file joins the lifecycle directly at uploaded, then runs
// through the same relocation and dispatch path as a resumable upload. A
// filename already registered for the submission is skipped; other per-file
// failures are collected so one bad file does not block the rest of the batch.
func (s *globusService) ProcessUploadedFiles(ctx context.Context, owner, submissionID string, filenames []string) error {
	share, err := s.shares.FindByOwner(ctx, owner)
	if err != nil {
		return err
	}
	if !share.HasSubmission(submissionID) {
		return fmt.Errorf("%w: submission %s is not registered with the share of %s",
			domain.ErrShareNotFound, submissionID, owner)
	}

	var errs []error
	for _, filename := range filenames {
		if err := s.ingestFile(ctx, owner, submissionID, filename); err != nil {
			if errors.Is(err, domain.ErrDuplicateFile) {
				s.logger.Warn("skipping already registered file",
					"owner", owner, "submissionID", submissionID, "filename", filename)
				continue
			}
			s.logger.Error("failed to ingest uploaded file",
				"owner", owner, "submissionID", submissionID, "filename", filename, "error", err)
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (s *globusService) ingestFile(ctx context.Context, owner, submissionID, filename string) error {
	_, err := s.files.FindByFilenameAndSubmissionID(ctx, filename, submissionID)
	if err == nil {
		return fmt.Errorf("%w: %s in submission %s", domain.ErrDuplicateFile, filename, submissionID)
	}
	if !errors.Is(err, domain.ErrFileNotFound) {
		return err
	}

	sourcePath := filepath.Join(s.cfg.BaseUploadDir, owner, filename)
	size, err := s.staging.Size(sourcePath)
	if err != nil {
		return fmt.Errorf("inspecting transferred file %s: %w", sourcePath, err)
	}

	now := time.Now().UTC()
	file := domain.File{
		ID:               uuid.New(),
		UploadID:         uuid.NewString(),
		Filename:         filename,
		SubmissionID:     submissionID,
		TotalSize:        size,
		UploadedSize:     size,
		UploadPath:       sourcePath,
		TargetPath:       s.archivePath(submissionID, filename),
		Status:           domain.FileStatusUploaded,
		Source:           domain.FileSourceGlobus,
		CreatedBy:        owner,
		UploadStartedAt:  &now,
		UploadFinishedAt: &now,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.files.Create(ctx, file); err != nil {
		return err
	}

	if err := s.staging.Move(file.UploadPath, file.TargetPath); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrRelocationFailed, err)
	}

	file.UploadPath = file.TargetPath
	file.Status = domain.FileStatusReadyForChecksum
	if err := s.files.Update(ctx, file); err != nil {
		return err
	}

	return s.dispatcher.DispatchValidation(ctx, &file)
}

func (s *globusService) archivePath(submissionID, filename string) string {
	return filepath.Join(s.upload.SourceBasePath, s.upload.TargetBasePath, domain.TargetFolder(submissionID), filename)
}
