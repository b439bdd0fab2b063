package gatekeeper

import (
	"context"

	"github.com/EMBL-EBI-SUBS/file-upload-service/internal/core/domain"

	"github.com/stretchr/testify/mock"
)

// MockGatekeeper is a mock implementation of Gatekeeper
type MockGatekeeper struct {
	mock.Mock
}

// NewMockGatekeeper creates a new MockGatekeeper
func NewMockGatekeeper() *MockGatekeeper {
	return &MockGatekeeper{}
}

func (m *MockGatekeeper) ValidateUploadRequest(ctx context.Context, info domain.TUSFileInfo) error {
	args := m.Called(ctx, info)
	return args.Error(0)
}
