package eventbroker

import (
	"context"

	"github.com/EMBL-EBI-SUBS/file-upload-service/internal/core/domain"

	"github.com/stretchr/testify/mock"
)

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

// NewMockEventPublisher creates a new MockEventPublisher
func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{}
}

func (m *MockEventPublisher) PublishChecksumGeneration(ctx context.Context, msg domain.ChecksumGenerationMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockEventPublisher) PublishFileContentValidation(ctx context.Context, msg domain.FileContentValidationMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockEventPublisher) PublishFileDeletedValidation(ctx context.Context, msg domain.FileDeletedValidationMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
