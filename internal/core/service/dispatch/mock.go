package dispatch

import (
	"context"

	"github.com/EMBL-EBI-SUBS/file-upload-service/internal/core/domain"

	"github.com/stretchr/testify/mock"
)

// MockDispatcher is a mock implementation of Dispatcher
type MockDispatcher struct {
	mock.Mock
}

// NewMockDispatcher creates a new MockDispatcher
func NewMockDispatcher() *MockDispatcher {
	return &MockDispatcher{}
}

func (m *MockDispatcher) DispatchValidation(ctx context.Context, file *domain.File) error {
	args := m.Called(ctx, file)
	return args.Error(0)
}
