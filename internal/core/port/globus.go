package port

import (
	"context"

	"github.com/EMBL-EBI-SUBS/file-upload-service/internal/core/domain"
)

// GlobusShareRepository is an interface to interact with globus share records.
// The store must enforce uniqueness on the owner key; Create reports a lost
// insert race as domain.ErrAlreadyExists.
type GlobusShareRepository interface {
	FindByOwner(ctx context.Context, owner string) (*domain.GlobusShare, error)
	Create(ctx context.Context, share domain.GlobusShare) error
	SetEndpoint(ctx context.Context, owner, sharedEndpointID, shareLink string) error
	// AddSubmission atomically registers a submission and returns the updated
	// share, or domain.ErrShareNotFound when the share was torn down.
	AddSubmission(ctx context.Context, owner, submissionID string) (*domain.GlobusShare, error)
	RemoveSubmission(ctx context.Context, owner, submissionID string) error
	// DeleteIfUnused removes the share only while no submission is registered
	// and returns the removed record; domain.ErrShareNotFound means another
	// caller either won the removal or re-registered the share.
	DeleteIfUnused(ctx context.Context, owner string) (*domain.GlobusShare, error)
	DeleteByOwner(ctx context.Context, owner string) error
}

// TransferClient talks to the external transfer API
type TransferClient interface {
	CreateShare(ctx context.Context, hostPath, displayName, description string) (string, error)
	DeleteEndpoint(ctx context.Context, endpointID string) error
	AddAllAuthenticatedUsersACL(ctx context.Context, endpointID string) error
}

// GlobusService coordinates the shared transfer endpoints and ingests files
// uploaded through them
type GlobusService interface {
	GetShareLink(ctx context.Context, owner, submissionID string) (string, error)
	ProcessUploadedFiles(ctx context.Context, owner, submissionID string, files []string) error
	UnregisterSubmission(ctx context.Context, owner, submissionID string) error
}
