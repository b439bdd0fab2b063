package hook

import (
	"context"

	"github.com/EMBL-EBI-SUBS/file-upload-service/internal/core/domain"

	"github.com/stretchr/testify/mock"
)

// MockHookService is a mock implementation of HookService
type MockHookService struct {
	mock.Mock
}

// NewMockHookService creates a new MockHookService
func NewMockHookService() *MockHookService {
	return &MockHookService{}
}

func (m *MockHookService) Handle(ctx context.Context, eventType domain.HookEventType, info domain.TUSFileInfo) error {
	args := m.Called(ctx, eventType, info)
	return args.Error(0)
}
