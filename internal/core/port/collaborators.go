package port

import (
	"context"

	"github.com/EMBL-EBI-SUBS/file-upload-service/internal/core/domain"
)

// TokenVerifier checks a security token against the trusted signing key
type TokenVerifier interface {
	Verify(token string) (*domain.TokenClaims, error)
}

// SubmissionService looks up submission state in the external submissions API
type SubmissionService interface {
	GetStatus(ctx context.Context, submissionID, jwtToken string) (string, error)
	IsModifiable(ctx context.Context, submissionID, jwtToken string) (bool, error)
	GetTeamName(ctx context.Context, submissionID, jwtToken string) (string, error)
}
