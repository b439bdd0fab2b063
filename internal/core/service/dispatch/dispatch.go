package dispatch

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/EMBL-EBI-SUBS/file-upload-service/internal/core/domain"
	"github.com/EMBL-EBI-SUBS/file-upload-service/internal/core/port"

	"github.com/google/uuid"
)

type dispatchService struct {
	files     port.FileRepository
	publisher port.EventPublisher
	logger    *slog.Logger
}

// NewDispatchService creates the dispatcher that hands relocated files over
// to the downstream checksum and content validation workers
func NewDispatchService(files port.FileRepository, publisher port.EventPublisher, logger *slog.Logger) port.Dispatcher {
	return &dispatchService{
		files:     files,
		publisher: publisher,
		logger:    logger,
	}
}

// DispatchValidation attaches a fresh validation result reference to the file
// record and publishes the checksum generation work item, plus a content
// validation work item when the file's extension maps to a supported type.
func (d *dispatchService) DispatchValidation(ctx context.Context, file *domain.File) error {
	file.ValidationResultID = uuid.NewString()
	if err := d.files.Update(ctx, *file); err != nil {
		return fmt.Errorf("persisting validation result reference: %w", err)
	}

	checksumMsg := domain.ChecksumGenerationMessage{GeneratedUploadID: file.UploadID}
	if err := d.publisher.PublishChecksumGeneration(ctx, checksumMsg); err != nil {
		return err
	}

	fileType := domain.FileTypeByExtension(file.TargetPath)
	if fileType == "" {
		d.logger.Info("file not supported for content validation", "path", file.TargetPath)
		return nil
	}

	contentMsg := domain.FileContentValidationMessage{
		FileUUID:             file.ID.String(),
		FileType:             fileType,
		FilePath:             file.TargetPath,
		ValidationResultUUID: file.ValidationResultID,
	}
	return d.publisher.PublishFileContentValidation(ctx, contentMsg)
}
