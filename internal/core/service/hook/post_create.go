package hook

import (
	"context"
	"fmt"
	"time"

	"github.com/EMBL-EBI-SUBS/file-upload-service/internal/core/domain"

	"github.com/google/uuid"
)

// postCreate registers the file record once the tusd server has allocated an
// upload resource. The record starts out initialized; no bytes have been
// received yet.
func (s *hookService) postCreate(ctx context.Context, info domain.TUSFileInfo) error {
	claims, err := s.tokens.Verify(info.Metadata.JWTToken)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	file := domain.File{
		ID:           uuid.New(),
		UploadID:     info.TusID,
		Filename:     info.Metadata.Filename,
		SubmissionID: info.Metadata.SubmissionID,
		TotalSize:    info.Size,
		Status:       domain.FileStatusInitialized,
		Source:       domain.FileSourceTUS,
		CreatedBy:    claims.Subject,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.files.Create(ctx, file); err != nil {
		return fmt.Errorf("registering file record for upload %s: %w", info.TusID, err)
	}

	s.logger.Info("file record registered",
		"uploadID", info.TusID,
		"submissionID", info.Metadata.SubmissionID,
		"filename", info.Metadata.Filename,
	)

	return nil
}
