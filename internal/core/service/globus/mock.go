package globus

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockGlobusService is a mock implementation of GlobusService
type MockGlobusService struct {
	mock.Mock
}

// NewMockGlobusService creates a new MockGlobusService
func NewMockGlobusService() *MockGlobusService {
	return &MockGlobusService{}
}

func (m *MockGlobusService) GetShareLink(ctx context.Context, owner, submissionID string) (string, error) {
	args := m.Called(ctx, owner, submissionID)
	return args.String(0), args.Error(1)
}

func (m *MockGlobusService) ProcessUploadedFiles(ctx context.Context, owner, submissionID string, files []string) error {
	args := m.Called(ctx, owner, submissionID, files)
	return args.Error(0)
}

func (m *MockGlobusService) UnregisterSubmission(ctx context.Context, owner, submissionID string) error {
	args := m.Called(ctx, owner, submissionID)
	return args.Error(0)
}
