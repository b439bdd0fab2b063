package gatekeeper_test

import (
	"context"
	"errors"
	"testing"

	"github.com/EMBL-EBI-SUBS/file-upload-service/internal/adapters/auth"
	"github.com/EMBL-EBI-SUBS/file-upload-service/internal/adapters/repository"
	"github.com/EMBL-EBI-SUBS/file-upload-service/internal/adapters/storage"
	"github.com/EMBL-EBI-SUBS/file-upload-service/internal/adapters/submission"
	"github.com/EMBL-EBI-SUBS/file-upload-service/internal/core/domain"
	"github.com/EMBL-EBI-SUBS/file-upload-service/internal/core/service/gatekeeper"

	"github.com/stretchr/testify/assert"
)

func validInfo() domain.TUSFileInfo {
	return domain.TUSFileInfo{
		TusID: "tus-1",
		Size:  200,
		Metadata: domain.TUSFileMetadata{
			Filename:     "x.fastq.gz",
			SubmissionID: "S1",
			JWTToken:     "token",
		},
	}
}

func TestGatekeeper_ValidateUploadRequest_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockFiles := repository.NewMockFileRepository()
	mockStaging := storage.NewMockStagingStore()
	mockTokens := auth.NewMockTokenVerifier()
	mockSubmissions := submission.NewMockSubmissionService()
	service := gatekeeper.NewGatekeeperService(mockFiles, mockStaging, mockTokens, mockSubmissions)

	info := validInfo()

	mockStaging.On("UsableSpace").Return(uint64(1_000_000), nil)
	mockTokens.On("Verify", "token").Return(&domain.TokenClaims{Subject: "usr-karoly"}, nil)
	mockSubmissions.On("IsModifiable", ctx, "S1", "token").Return(true, nil)
	mockFiles.
		On("FindByFilenameAndSubmissionID", ctx, "x.fastq.gz", "S1").
		Return((*domain.File)(nil), domain.ErrFileNotFound)

	// Act
	err := service.ValidateUploadRequest(ctx, info)

	// Assert
	assert.NoError(t, err)
	mockStaging.AssertExpectations(t)
	mockTokens.AssertExpectations(t)
	mockSubmissions.AssertExpectations(t)
	mockFiles.AssertExpectations(t)
}

func TestGatekeeper_ValidateUploadRequest_MissingMetadata(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(info *domain.TUSFileInfo)
		wantErr error
	}{
		{
			name:    "missing token",
			mutate:  func(info *domain.TUSFileInfo) { info.Metadata.JWTToken = "" },
			wantErr: domain.ErrJWTTokenRequired,
		},
		{
			name:    "missing submission id",
			mutate:  func(info *domain.TUSFileInfo) { info.Metadata.SubmissionID = "" },
			wantErr: domain.ErrSubmissionIDRequired,
		},
		{
			name:    "missing filename",
			mutate:  func(info *domain.TUSFileInfo) { info.Metadata.Filename = "" },
			wantErr: domain.ErrFilenameRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := gatekeeper.NewGatekeeperService(
				repository.NewMockFileRepository(),
				storage.NewMockStagingStore(),
				auth.NewMockTokenVerifier(),
				submission.NewMockSubmissionService(),
			)

			info := validInfo()
			tt.mutate(&info)

			err := service.ValidateUploadRequest(ctx, info)

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGatekeeper_ValidateUploadRequest_NotEnoughDiskSpace(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockStaging := storage.NewMockStagingStore()
	service := gatekeeper.NewGatekeeperService(
		repository.NewMockFileRepository(),
		mockStaging,
		auth.NewMockTokenVerifier(),
		submission.NewMockSubmissionService(),
	)

	info := validInfo()
	info.Size = 200

	mockStaging.On("UsableSpace").Return(uint64(100), nil)

	// Act
	err := service.ValidateUploadRequest(ctx, info)

	// Assert
	assert.ErrorIs(t, err, domain.ErrNotEnoughDiskSpace)
	mockStaging.AssertExpectations(t)
}

func TestGatekeeper_ValidateUploadRequest_InvalidToken(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockStaging := storage.NewMockStagingStore()
	mockTokens := auth.NewMockTokenVerifier()
	service := gatekeeper.NewGatekeeperService(
		repository.NewMockFileRepository(),
		mockStaging,
		mockTokens,
		submission.NewMockSubmissionService(),
	)

	mockStaging.On("UsableSpace").Return(uint64(1_000_000), nil)
	mockTokens.On("Verify", "token").Return((*domain.TokenClaims)(nil), domain.ErrInvalidToken)

	// Act
	err := service.ValidateUploadRequest(ctx, validInfo())

	// Assert
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestGatekeeper_ValidateUploadRequest_SubmissionNotModifiable(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockStaging := storage.NewMockStagingStore()
	mockTokens := auth.NewMockTokenVerifier()
	mockSubmissions := submission.NewMockSubmissionService()
	service := gatekeeper.NewGatekeeperService(
		repository.NewMockFileRepository(),
		mockStaging,
		mockTokens,
		mockSubmissions,
	)

	mockStaging.On("UsableSpace").Return(uint64(1_000_000), nil)
	mockTokens.On("Verify", "token").Return(&domain.TokenClaims{Subject: "usr-karoly"}, nil)
	mockSubmissions.On("IsModifiable", ctx, "S1", "token").Return(false, nil)

	// Act
	err := service.ValidateUploadRequest(ctx, validInfo())

	// Assert
	assert.ErrorIs(t, err, domain.ErrSubmissionNotModifiable)
}

func TestGatekeeper_ValidateUploadRequest_SubmissionNotFound(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockStaging := storage.NewMockStagingStore()
	mockTokens := auth.NewMockTokenVerifier()
	mockSubmissions := submission.NewMockSubmissionService()
	service := gatekeeper.NewGatekeeperService(
		repository.NewMockFileRepository(),
		mockStaging,
		mockTokens,
		mockSubmissions,
	)

	mockStaging.On("UsableSpace").Return(uint64(1_000_000), nil)
	mockTokens.On("Verify", "token").Return(&domain.TokenClaims{Subject: "usr-karoly"}, nil)
	mockSubmissions.
		On("IsModifiable", ctx, "S1", "token").
		Return(false, errors.Join(domain.ErrSubmissionNotFound))

	// Act
	err := service.ValidateUploadRequest(ctx, validInfo())

	// Assert
	assert.ErrorIs(t, err, domain.ErrSubmissionNotFound)
	assert.NotErrorIs(t, err, domain.ErrSubmissionNotModifiable)
}

func TestGatekeeper_ValidateUploadRequest_DuplicateFile(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockFiles := repository.NewMockFileRepository()
	mockStaging := storage.NewMockStagingStore()
	mockTokens := auth.NewMockTokenVerifier()
	mockSubmissions := submission.NewMockSubmissionService()
	service := gatekeeper.NewGatekeeperService(mockFiles, mockStaging, mockTokens, mockSubmissions)

	mockStaging.On("UsableSpace").Return(uint64(1_000_000), nil)
	mockTokens.On("Verify", "token").Return(&domain.TokenClaims{Subject: "usr-karoly"}, nil)
	mockSubmissions.On("IsModifiable", ctx, "S1", "token").Return(true, nil)
	mockFiles.
		On("FindByFilenameAndSubmissionID", ctx, "x.fastq.gz", "S1").
		Return(&domain.File{Filename: "x.fastq.gz", SubmissionID: "S1"}, nil)

	// Act
	err := service.ValidateUploadRequest(ctx, validInfo())

	// Assert
	assert.ErrorIs(t, err, domain.ErrDuplicateFile)
}
