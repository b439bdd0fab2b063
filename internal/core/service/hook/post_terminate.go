package hook

import (
	"context"

	"github.com/EMBL-EBI-SUBS/file-upload-service/internal/core/domain"
)

// postTerminate cleans up after the client abandons an upload. The staged
// artifacts disappear along with the record, freeing the filename for a new
// attempt within the same submission.
func (s *hookService) postTerminate(ctx context.Context, info domain.TUSFileInfo) error {
	file, err := s.files.FindByUploadID(ctx, info.TusID)
	if err != nil {
		return err
	}

	file.Status = domain.FileStatusMarkForDeletion
	if err := s.files.Update(ctx, *file); err != nil {
		return err
	}

	if err := s.staging.Remove(s.stagedBinPath(info.TusID)); err != nil {
		s.logger.Warn("failed to remove staged payload", "uploadID", info.TusID, "error", err)
	}
	if err := s.staging.Remove(s.stagedInfoPath(info.TusID)); err != nil {
		s.logger.Warn("failed to remove upload metadata file", "uploadID", info.TusID, "error", err)
	}

	if err := s.files.Delete(ctx, info.TusID); err != nil {
		return err
	}

	s.logger.Info("terminated upload cleaned up", "uploadID", info.TusID, "submissionID", file.SubmissionID)

	return nil
}
