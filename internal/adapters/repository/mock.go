package repository

import (
	"context"

	"github.com/EMBL-EBI-SUBS/file-upload-service/internal/core/domain"

	"github.com/stretchr/testify/mock"
)

type MockFileRepository struct {
	mock.Mock
}

func NewMockFileRepository() *MockFileRepository {
	return &MockFileRepository{}
}

func (m *MockFileRepository) Create(ctx context.Context, file domain.File) error {
	args := m.Called(ctx, file)
	return args.Error(0)
}

func (m *MockFileRepository) FindByUploadID(ctx context.Context, uploadID string) (*domain.File, error) {
	args := m.Called(ctx, uploadID)
	return args.Get(0).(*domain.File), args.Error(1)
}

func (m *MockFileRepository) FindByFilenameAndSubmissionID(ctx context.Context, filename, submissionID string) (*domain.File, error) {
	args := m.Called(ctx, filename, submissionID)
	return args.Get(0).(*domain.File), args.Error(1)
}

func (m *MockFileRepository) Update(ctx context.Context, file domain.File) error {
	args := m.Called(ctx, file)
	return args.Error(0)
}

func (m *MockFileRepository) Delete(ctx context.Context, uploadID string) error {
	args := m.Called(ctx, uploadID)
	return args.Error(0)
}

type MockGlobusShareRepository struct {
	mock.Mock
}

func NewMockGlobusShareRepository() *MockGlobusShareRepository {
	return &MockGlobusShareRepository{}
}

func (m *MockGlobusShareRepository) FindByOwner(ctx context.Context, owner string) (*domain.GlobusShare, error) {
	args := m.Called(ctx, owner)
	return args.Get(0).(*domain.GlobusShare), args.Error(1)
}

func (m *MockGlobusShareRepository) Create(ctx context.Context, share domain.GlobusShare) error {
	args := m.Called(ctx, share)
	return args.Error(0)
}

func (m *MockGlobusShareRepository) SetEndpoint(ctx context.Context, owner, sharedEndpointID, shareLink string) error {
	args := m.Called(ctx, owner, sharedEndpointID, shareLink)
	return args.Error(0)
}

func (m *MockGlobusShareRepository) AddSubmission(ctx context.Context, owner, submissionID string) (*domain.GlobusShare, error) {
	args := m.Called(ctx, owner, submissionID)
	return args.Get(0).(*domain.GlobusShare), args.Error(1)
}

func (m *MockGlobusShareRepository) RemoveSubmission(ctx context.Context, owner, submissionID string) error {
	args := m.Called(ctx, owner, submissionID)
	return args.Error(0)
}

func (m *MockGlobusShareRepository) DeleteIfUnused(ctx context.Context, owner string) (*domain.GlobusShare, error) {
	args := m.Called(ctx, owner)
	return args.Get(0).(*domain.GlobusShare), args.Error(1)
}

func (m *MockGlobusShareRepository) DeleteByOwner(ctx context.Context, owner string) error {
	args := m.Called(ctx, owner)
	return args.Error(0)
}
