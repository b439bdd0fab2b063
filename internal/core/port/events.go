package port

import (
	"context"

	"github.com/EMBL-EBI-SUBS/file-upload-service/internal/core/domain"
)

// EventPublisher publishes outbound work items to the message broker
type EventPublisher interface {
	PublishChecksumGeneration(ctx context.Context, msg domain.ChecksumGenerationMessage) error
	PublishFileContentValidation(ctx context.Context, msg domain.FileContentValidationMessage) error
	PublishFileDeletedValidation(ctx context.Context, msg domain.FileDeletedValidationMessage) error
}

// EventConsumer is an interface to define a broker consumer for the globus
// notification subjects
type EventConsumer interface {
	Subscribe(ctx context.Context, handler GlobusMessageService) error
	Close() error
}

// GlobusMessageService handles raw broker messages of the globus subjects
type GlobusMessageService interface {
	// HandleShareRequest returns the share link to send back as the reply.
	HandleShareRequest(ctx context.Context, data []byte) (string, error)
	HandleUploadedFiles(ctx context.Context, data []byte) error
	HandleSubmissionSubmitted(ctx context.Context, data []byte) error
}
