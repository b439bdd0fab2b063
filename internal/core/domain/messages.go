package domain

// ChecksumGenerationMessage asks the checksum worker to process an upload
type ChecksumGenerationMessage struct {
	GeneratedUploadID string `json:"generatedTusId"`
}

// FileContentValidationMessage asks the content validator to process a file
type FileContentValidationMessage struct {
	FileUUID             string `json:"fileUUID"`
	FileType             string `json:"fileType"`
	FilePath             string `json:"filePath"`
	ValidationResultUUID string `json:"validationResultUUID"`
}

// FileDeletedValidationMessage notifies the reference validator that a file
// of a submission was deleted
type FileDeletedValidationMessage struct {
	SubmissionID string `json:"submissionId"`
}
