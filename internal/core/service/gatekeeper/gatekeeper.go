package gatekeeper

import (
	"context"
	"errors"
	"fmt"

	"github.com/EMBL-EBI-SUBS/file-upload-service/internal/core/domain"
	"github.com/EMBL-EBI-SUBS/file-upload-service/internal/core/port"
)

type gatekeeperService struct {
	files       port.FileRepository
	staging     port.StagingStore
	tokens      port.TokenVerifier
	submissions port.SubmissionService
}

// NewGatekeeperService creates the pre-admission validator for upload requests
func NewGatekeeperService(files port.FileRepository, staging port.StagingStore, tokens port.TokenVerifier, submissions port.SubmissionService) port.Gatekeeper {
	return &gatekeeperService{
		files:       files,
		staging:     staging,
		tokens:      tokens,
		submissions: submissions,
	}
}

// ValidateUploadRequest runs the admission checks in order. The cheap local
// checks (metadata completeness, disk space) run before anything that calls
// out to a collaborator.
func (g *gatekeeperService) ValidateUploadRequest(ctx context.Context, info domain.TUSFileInfo) error {
	if err := validateMetadata(info.Metadata); err != nil {
		return err
	}

	usable, err := g.staging.UsableSpace()
	if err != nil {
		return fmt.Errorf("checking staging area disk space: %w", err)
	}
	if info.Size < 0 || usable <= uint64(info.Size) {
		return fmt.Errorf("%w: %s needs %d bytes", domain.ErrNotEnoughDiskSpace, info.Metadata.Filename, info.Size)
	}

	if _, err := g.tokens.Verify(info.Metadata.JWTToken); err != nil {
		return err
	}

	modifiable, err := g.submissions.IsModifiable(ctx, info.Metadata.SubmissionID, info.Metadata.JWTToken)
	if err != nil {
		return err
	}
	if !modifiable {
		return fmt.Errorf("%w: %s", domain.ErrSubmissionNotModifiable, info.Metadata.SubmissionID)
	}

	_, err = g.files.FindByFilenameAndSubmissionID(ctx, info.Metadata.Filename, info.Metadata.SubmissionID)
	switch {
	case err == nil:
		return fmt.Errorf("%w: %s in submission %s", domain.ErrDuplicateFile, info.Metadata.Filename, info.Metadata.SubmissionID)
	case errors.Is(err, domain.ErrFileNotFound):
		return nil
	default:
		return err
	}
}

func validateMetadata(metadata domain.TUSFileMetadata) error {
	if metadata.JWTToken == "" {
		return domain.ErrJWTTokenRequired
	}
	if metadata.SubmissionID == "" {
		return domain.ErrSubmissionIDRequired
	}
	if metadata.Filename == "" {
		return domain.ErrFilenameRequired
	}
	return nil
}
