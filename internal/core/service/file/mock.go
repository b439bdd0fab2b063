package file

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockFileService is a mock implementation of FileService
type MockFileService struct {
	mock.Mock
}

// NewMockFileService creates a new MockFileService
func NewMockFileService() *MockFileService {
	return &MockFileService{}
}

func (m *MockFileService) DeleteFile(ctx context.Context, uploadID, jwtToken string) error {
	args := m.Called(ctx, uploadID, jwtToken)
	return args.Error(0)
}
