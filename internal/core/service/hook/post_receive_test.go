package hook_test

import (
	"context"
	"testing"

	"github.com/EMBL-EBI-SUBS/file-upload-service/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestHookService_PostReceive_FirstProgressStartsUpload(t *testing.T) {
	// Arrange
	ctx := context.Background()
	service, mocks := newHookService(t)

	existing := &domain.File{
		ID:       uuid.New(),
		UploadID: "tus-1",
		Status:   domain.FileStatusInitialized,
	}

	mocks.files.On("FindByUploadID", ctx, "tus-1").Return(existing, nil)
	mocks.files.On("Update", ctx, mock.MatchedBy(func(f domain.File) bool {
		return f.Status == domain.FileStatusUploading &&
			f.UploadStartedAt != nil &&
			f.UploadedSize == 512 &&
			f.TotalSize == 2048
	})).Return(nil)

	// Act
	err := service.Handle(ctx, domain.HookPostReceive, domain.TUSFileInfo{
		TusID:  "tus-1",
		Size:   2048,
		Offset: 512,
	})

	// Assert
	assert.NoError(t, err)
	mocks.files.AssertExpectations(t)
}

func TestHookService_PostReceive_SubsequentProgressKeepsStartTime(t *testing.T) {
	// Arrange
	ctx := context.Background()
	service, mocks := newHookService(t)

	started := timePtr(t)
	existing := &domain.File{
		ID:              uuid.New(),
		UploadID:        "tus-1",
		Status:          domain.FileStatusUploading,
		UploadStartedAt: started,
		UploadedSize:    512,
	}

	mocks.files.On("FindByUploadID", ctx, "tus-1").Return(existing, nil)
	mocks.files.On("Update", ctx, mock.MatchedBy(func(f domain.File) bool {
		return f.Status == domain.FileStatusUploading &&
			f.UploadStartedAt == started &&
			f.UploadedSize == 1024
	})).Return(nil)

	// Act
	err := service.Handle(ctx, domain.HookPostReceive, domain.TUSFileInfo{
		TusID:  "tus-1",
		Size:   2048,
		Offset: 1024,
	})

	// Assert
	assert.NoError(t, err)
	mocks.files.AssertExpectations(t)
}

func TestHookService_PostReceive_AfterUploadConcluded(t *testing.T) {
	// Arrange
	ctx := context.Background()
	service, mocks := newHookService(t)

	existing := &domain.File{
		ID:       uuid.New(),
		UploadID: "tus-1",
		Status:   domain.FileStatusReadyForChecksum,
	}

	mocks.files.On("FindByUploadID", ctx, "tus-1").Return(existing, nil)

	// Act
	err := service.Handle(ctx, domain.HookPostReceive, domain.TUSFileInfo{TusID: "tus-1", Offset: 2048})

	// Assert
	assert.ErrorIs(t, err, domain.ErrFileStatusConflict)
	mocks.files.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestHookService_PostReceive_UnknownUpload(t *testing.T) {
	// Arrange
	ctx := context.Background()
	service, mocks := newHookService(t)

	mocks.files.On("FindByUploadID", ctx, "tus-ghost").Return((*domain.File)(nil), domain.ErrFileNotFound)

	// Act
	err := service.Handle(ctx, domain.HookPostReceive, domain.TUSFileInfo{TusID: "tus-ghost"})

	// Assert
	assert.ErrorIs(t, err, domain.ErrFileNotFound)
}
