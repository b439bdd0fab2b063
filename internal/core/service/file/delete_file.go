package file

import (
	"context"
	"fmt"

	"github.com/EMBL-EBI-SUBS/file-upload-service/internal/core/domain"
)

// DeleteFile removes a tracked file on behalf of the submitter: the record is
// marked, the archived artifact removed, the record deleted and the reference
// validator notified so dangling references against the submission surface.
// Files still receiving bytes cannot be deleted; the client has to terminate
// the upload instead.
func (s *fileService) DeleteFile(ctx context.Context, uploadID, jwtToken string) error {
	file, err := s.files.FindByUploadID(ctx, uploadID)
	if err != nil {
		return err
	}

	modifiable, err := s.submissions.IsModifiable(ctx, file.SubmissionID, jwtToken)
	if err != nil {
		return err
	}
	if !modifiable {
		return fmt.Errorf("%w: submission %s", domain.ErrSubmissionNotModifiable, file.SubmissionID)
	}

	switch file.Status {
	case domain.FileStatusInitialized, domain.FileStatusUploading:
		return fmt.Errorf("%w: upload of %s still in progress", domain.ErrFileStatusConflict, uploadID)
	}

	file.Status = domain.FileStatusMarkForDeletion
	if err := s.files.Update(ctx, *file); err != nil {
		return err
	}

	// Artifact first, record second. A failed removal keeps the record so
	// the caller can retry instead of leaving an orphaned artifact behind.
	if file.UploadPath != "" {
		if err := s.staging.Remove(file.UploadPath); err != nil {
			return fmt.Errorf("removing file artifact %s: %w", file.UploadPath, err)
		}
	}

	if err := s.files.Delete(ctx, uploadID); err != nil {
		return err
	}

	msg := domain.FileDeletedValidationMessage{SubmissionID: file.SubmissionID}
	if err := s.publisher.PublishFileDeletedValidation(ctx, msg); err != nil {
		return err
	}

	s.logger.Info("file deleted", "uploadID", uploadID, "submissionID", file.SubmissionID)

	return nil
}
