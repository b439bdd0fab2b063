package hook

import (
	"context"
	"fmt"
	"time"

	"github.com/EMBL-EBI-SUBS/file-upload-service/internal/core/domain"
)

// postReceive records upload progress. The first progress event also stamps
// the upload start time and flips the record to uploading. Progress events
// arriving after the upload already concluded are rejected.
func (s *hookService) postReceive(ctx context.Context, info domain.TUSFileInfo) error {
	file, err := s.files.FindByUploadID(ctx, info.TusID)
	if err != nil {
		return err
	}

	switch file.Status {
	case domain.FileStatusInitialized:
		now := time.Now().UTC()
		file.UploadStartedAt = &now
		file.Status = domain.FileStatusUploading
	case domain.FileStatusUploading:
	default:
		return fmt.Errorf("%w: progress reported while %s", domain.ErrFileStatusConflict, file.Status)
	}

	file.UploadedSize = info.Offset
	file.TotalSize = info.Size

	return s.files.Update(ctx, *file)
}
