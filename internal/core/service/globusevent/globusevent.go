package globusevent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/EMBL-EBI-SUBS/file-upload-service/internal/core/domain"
	"github.com/EMBL-EBI-SUBS/file-upload-service/internal/core/port"
)

type globusEventService struct {
	globus port.GlobusService
	logger *slog.Logger
}

// NewGlobusEventService creates the service that decodes globus broker
// messages and drives the share coordinator with them
func NewGlobusEventService(globus port.GlobusService, logger *slog.Logger) port.GlobusMessageService {
	return &globusEventService{
		globus: globus,
		logger: logger,
	}
}

// HandleShareRequest resolves a share link for the requesting owner's
// submission. The returned link goes back to the requester as the reply.
func (s *globusEventService) HandleShareRequest(ctx context.Context, data []byte) (string, error) {
	var req domain.GlobusShareRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return "", fmt.Errorf("decoding share request: %w", err)
	}

	s.logger.Info("share link requested", "owner", req.Owner, "submissionID", req.SubmissionID)

	return s.globus.GetShareLink(ctx, req.Owner, req.SubmissionID)
}

func (s *globusEventService) HandleUploadedFiles(ctx context.Context, data []byte) error {
	var notification domain.GlobusUploadedFilesNotification
	if err := json.Unmarshal(data, &notification); err != nil {
		return fmt.Errorf("decoding uploaded files notification: %w", err)
	}

	s.logger.Info("uploaded files notification received",
		"owner", notification.Owner,
		"submissionID", notification.SubmissionID,
		"fileCount", len(notification.Files),
	)

	return s.globus.ProcessUploadedFiles(ctx, notification.Owner, notification.SubmissionID, notification.Files)
}

// HandleSubmissionSubmitted unregisters the submitted submission from its
// owner's share; the last registered submission tears the share down.
func (s *globusEventService) HandleSubmissionSubmitted(ctx context.Context, data []byte) error {
	var envelope domain.SubmissionEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return fmt.Errorf("decoding submission envelope: %w", err)
	}

	return s.globus.UnregisterSubmission(ctx, envelope.Submission.CreatedBy, envelope.Submission.ID)
}
