package globus

import (
	"context"
	"log/slog"

	"github.com/EMBL-EBI-SUBS/file-upload-service/internal/config"
	"github.com/EMBL-EBI-SUBS/file-upload-service/internal/core/port"
)

type globusService struct {
	shares     port.GlobusShareRepository
	files      port.FileRepository
	transfer   port.TransferClient
	staging    port.StagingStore
	dispatcher port.Dispatcher
	cfg        config.GlobusConfig
	upload     config.UploadConfig
	logger     *slog.Logger
}

// NewGlobusService creates the coordinator for the per-owner shared transfer
// endpoints and the ingestion of files uploaded through them
func NewGlobusService(
	shares port.GlobusShareRepository,
	files port.FileRepository,
	transfer port.TransferClient,
	staging port.StagingStore,
	dispatcher port.Dispatcher,
	cfg config.GlobusConfig,
	upload config.UploadConfig,
	logger *slog.Logger,
) port.GlobusService {
	return &globusService{
		shares:     shares,
		files:      files,
		transfer:   transfer,
		staging:    staging,
		dispatcher: dispatcher,
		cfg:        cfg,
		upload:     upload,
		logger:     logger,
	}
}

// GetShareLink returns the owner's share link, provisioning the shared
// endpoint first when the owner does not have one yet. The submission is
// registered with the share before the link is handed out.
func (s *globusService) GetShareLink(ctx context.Context, owner, submissionID string) (string, error) {
	share, err := s.getOrCreateShare(ctx, owner, submissionID)
	if err != nil {
		return "", err
	}
	return share.ShareLink, nil
}
