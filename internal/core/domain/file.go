package domain

import (
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// FileStatus represents the lifecycle state of a tracked file
type FileStatus string

const (
	FileStatusInitialized      FileStatus = "initialized"
	FileStatusUploading        FileStatus = "uploading"
	FileStatusUploaded         FileStatus = "uploaded"
	FileStatusReadyForChecksum FileStatus = "ready_for_checksum"
	FileStatusMarkForDeletion  FileStatus = "mark_for_deletion"
)

// FileSource represents the upload channel a file arrived through
type FileSource string

const (
	FileSourceTUS    FileSource = "tus"
	FileSourceGlobus FileSource = "globus"
)

// File represents one tracked file of a submission
type File struct {
	ID                 uuid.UUID
	UploadID           string
	Filename           string
	SubmissionID       string
	TotalSize          int64
	UploadedSize       int64
	UploadPath         string
	TargetPath         string
	Status             FileStatus
	Source             FileSource
	CreatedBy          string
	UploadStartedAt    *time.Time
	UploadFinishedAt   *time.Time
	ValidationResultID string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TargetFolder derives the sharded archive folder for a submission:
// first character / second character / full identifier. The two leading
// levels keep the fan-out of the archive root bounded.
func TargetFolder(submissionID string) string {
	if len(submissionID) < 2 {
		return submissionID
	}
	return filepath.Join(submissionID[0:1], submissionID[1:2], submissionID)
}
