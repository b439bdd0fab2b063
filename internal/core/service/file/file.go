package file

import (
	"log/slog"

	"github.com/EMBL-EBI-SUBS/file-upload-service/internal/core/port"
)

type fileService struct {
	files       port.FileRepository
	submissions port.SubmissionService
	staging     port.StagingStore
	publisher   port.EventPublisher
	logger      *slog.Logger
}

// NewFileService creates the service behind the file management endpoints
func NewFileService(
	files port.FileRepository,
	submissions port.SubmissionService,
	staging port.StagingStore,
	publisher port.EventPublisher,
	logger *slog.Logger,
) port.FileService {
	return &fileService{
		files:       files,
		submissions: submissions,
		staging:     staging,
		publisher:   publisher,
		logger:      logger,
	}
}
