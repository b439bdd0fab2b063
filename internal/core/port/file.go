package port

import (
	"context"

	"github.com/EMBL-EBI-SUBS/file-upload-service/internal/core/domain"
)

// FileRepository is an interface to define file record interactions
type FileRepository interface {
	Create(ctx context.Context, file domain.File) error
	FindByUploadID(ctx context.Context, uploadID string) (*domain.File, error)
	FindByFilenameAndSubmissionID(ctx context.Context, filename, submissionID string) (*domain.File, error)
	Update(ctx context.Context, file domain.File) error
	Delete(ctx context.Context, uploadID string) error
}

// HookService handles one tusd hook event
type HookService interface {
	Handle(ctx context.Context, eventType domain.HookEventType, info domain.TUSFileInfo) error
}

// FileService handles file record requests outside the hook flow
type FileService interface {
	DeleteFile(ctx context.Context, uploadID, jwtToken string) error
}

// Gatekeeper runs the pre-admission checks for an upload request
type Gatekeeper interface {
	ValidateUploadRequest(ctx context.Context, info domain.TUSFileInfo) error
}

// Dispatcher emits the downstream validation work for a relocated file
type Dispatcher interface {
	DispatchValidation(ctx context.Context, file *domain.File) error
}
