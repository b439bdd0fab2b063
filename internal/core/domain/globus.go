package domain

import (
	"slices"
	"time"
)

// GlobusShare represents the single shared transfer endpoint of an owner.
// The uniqueness of the owner key at the storage layer is what serializes
// share creation across concurrent requests.
type GlobusShare struct {
	Owner                   string
	SharedEndpointID        string
	ShareLink               string
	RegisteredSubmissionIDs []string
	CreatedAt               time.Time
}

// HasSubmission reports whether the submission is registered with the share
func (s *GlobusShare) HasSubmission(submissionID string) bool {
	return slices.Contains(s.RegisteredSubmissionIDs, submissionID)
}

// GlobusShareRequest asks for a share link for an owner's submission
type GlobusShareRequest struct {
	Owner        string `json:"owner"`
	SubmissionID string `json:"submissionId"`
}

// GlobusUploadedFilesNotification lists filenames an owner uploaded through globus
type GlobusUploadedFilesNotification struct {
	Owner        string   `json:"owner"`
	SubmissionID string   `json:"submissionId"`
	Files        []string `json:"files"`
}

// SubmissionEnvelope wraps a submission in broker messages
type SubmissionEnvelope struct {
	Submission Submission `json:"submission"`
}

// Submission carries the submission fields used by this service
type Submission struct {
	ID        string `json:"id"`
	CreatedBy string `json:"createdBy"`
}
