package domain

import "errors"

// ErrAlreadyExists is an error thrown when entity already exists
var ErrAlreadyExists = errors.New("already exists")

// ErrFileNotFound is an error thrown when no file record exists for an upload id
var ErrFileNotFound = errors.New("file not found")

// ErrDuplicateFile is an error thrown when a file with the same name was already registered for the submission
var ErrDuplicateFile = errors.New("duplicate file")

// ErrShareNotFound is an error thrown when no globus share exists for an owner
var ErrShareNotFound = errors.New("globus share not found")

// ErrShareWaitExpired is an error thrown when a share did not finish provisioning within the wait period
var ErrShareWaitExpired = errors.New("share availability waiting period expired")

// ErrJWTTokenRequired is an error thrown when the upload metadata carries no token
var ErrJWTTokenRequired = errors.New("jwt token is mandatory")

// ErrSubmissionIDRequired is an error thrown when the upload metadata carries no submission id
var ErrSubmissionIDRequired = errors.New("submission id is mandatory")

// ErrFilenameRequired is an error thrown when the upload metadata carries no filename
var ErrFilenameRequired = errors.New("filename is mandatory")

// ErrInvalidToken is an error thrown when the security token fails verification
var ErrInvalidToken = errors.New("invalid token")

// ErrUnauthorized is an error thrown when a collaborator rejects the caller's credentials
var ErrUnauthorized = errors.New("unauthorized request")

// ErrSubmissionNotFound is an error thrown when the submission service does not know the submission
var ErrSubmissionNotFound = errors.New("submission not found")

// ErrSubmissionNotModifiable is an error thrown when the submission is no longer in a draft state
var ErrSubmissionNotModifiable = errors.New("submission not modifiable")

// ErrNotEnoughDiskSpace is an error thrown when the staging area cannot fit the declared upload
var ErrNotEnoughDiskSpace = errors.New("not enough disk space")

// ErrUnsupportedEvent is an error thrown when the hook event type is not recognized
var ErrUnsupportedEvent = errors.New("not supported event")

// ErrRelocationFailed is an error thrown when the uploaded artifact could not be moved to its target path
var ErrRelocationFailed = errors.New("relocation failed")

// ErrFileStatusConflict is an error thrown when the file's current status disallows the requested transition
var ErrFileStatusConflict = errors.New("file status conflict")

// ErrExternalAPI is an error thrown when a call to an external API fails
var ErrExternalAPI = errors.New("external api error")
