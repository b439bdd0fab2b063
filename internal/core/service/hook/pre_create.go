package hook

import (
	"context"

	"github.com/EMBL-EBI-SUBS/file-upload-service/internal/core/domain"
)

// preCreate runs the admission checks before the tusd server accepts the
// upload. A non-nil error makes the handler reject the creation request and
// no upload resource comes into existence.
func (s *hookService) preCreate(ctx context.Context, info domain.TUSFileInfo) error {
	return s.gatekeeper.ValidateUploadRequest(ctx, info)
}
