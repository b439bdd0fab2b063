package globusevent

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockGlobusMessageService is a mock implementation of GlobusMessageService
type MockGlobusMessageService struct {
	mock.Mock
}

// NewMockGlobusMessageService creates a new MockGlobusMessageService
func NewMockGlobusMessageService() *MockGlobusMessageService {
	return &MockGlobusMessageService{}
}

func (m *MockGlobusMessageService) HandleShareRequest(ctx context.Context, data []byte) (string, error) {
	args := m.Called(ctx, data)
	return args.String(0), args.Error(1)
}

func (m *MockGlobusMessageService) HandleUploadedFiles(ctx context.Context, data []byte) error {
	args := m.Called(ctx, data)
	return args.Error(0)
}

func (m *MockGlobusMessageService) HandleSubmissionSubmitted(ctx context.Context, data []byte) error {
	args := m.Called(ctx, data)
	return args.Error(0)
}
