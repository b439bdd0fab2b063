package hook

import (
	"context"
	"fmt"
	"time"

	"github.com/EMBL-EBI-SUBS/file-upload-service/internal/core/domain"
)

// postFinish concludes the upload: the record becomes uploaded, the staged
// payload moves to its archive location and the validation work is dispatched.
// When the move fails the record stays uploaded with its paths persisted, so
// driving the same event again retries the relocation.
func (s *hookService) postFinish(ctx context.Context, info domain.TUSFileInfo) error {
	file, err := s.files.FindByUploadID(ctx, info.TusID)
	if err != nil {
		return err
	}

	switch file.Status {
	case domain.FileStatusInitialized, domain.FileStatusUploading, domain.FileStatusUploaded:
	default:
		return fmt.Errorf("%w: finish reported while %s", domain.ErrFileStatusConflict, file.Status)
	}

	now := time.Now().UTC()
	if file.UploadStartedAt == nil {
		file.UploadStartedAt = &now
	}
	file.UploadFinishedAt = &now
	file.UploadedSize = info.Offset
	file.TotalSize = info.Size
	file.Status = domain.FileStatusUploaded
	file.UploadPath = s.stagedBinPath(info.TusID)
	file.TargetPath = s.archivePath(file.SubmissionID, file.Filename)

	if err := s.files.Update(ctx, *file); err != nil {
		return err
	}

	if err := s.staging.Move(file.UploadPath, file.TargetPath); err != nil {
		s.logger.Error("failed to relocate uploaded file",
			"uploadID", info.TusID,
			"source", file.UploadPath,
			"target", file.TargetPath,
			"error", err,
		)
		return fmt.Errorf("%w: %v", domain.ErrRelocationFailed, err)
	}

	// The companion metadata file has served its purpose. Losing it is not
	// worth failing the event over.
	if err := s.staging.Remove(s.stagedInfoPath(info.TusID)); err != nil {
		s.logger.Warn("failed to remove upload metadata file", "uploadID", info.TusID, "error", err)
	}

	file.UploadPath = file.TargetPath
	file.Status = domain.FileStatusReadyForChecksum
	if err := s.files.Update(ctx, *file); err != nil {
		return err
	}

	return s.dispatcher.DispatchValidation(ctx, file)
}
