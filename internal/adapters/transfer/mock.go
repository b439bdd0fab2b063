package transfer

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockTransferClient is a mock implementation of TransferClient
type MockTransferClient struct {
	mock.Mock
}

// NewMockTransferClient creates a new MockTransferClient
func NewMockTransferClient() *MockTransferClient {
	return &MockTransferClient{}
}

func (m *MockTransferClient) CreateShare(ctx context.Context, hostPath, displayName, description string) (string, error) {
	args := m.Called(ctx, hostPath, displayName, description)
	return args.String(0), args.Error(1)
}

func (m *MockTransferClient) DeleteEndpoint(ctx context.Context, endpointID string) error {
	args := m.Called(ctx, endpointID)
	return args.Error(0)
}

func (m *MockTransferClient) AddAllAuthenticatedUsersACL(ctx context.Context, endpointID string) error {
	args := m.Called(ctx, endpointID)
	return args.Error(0)
}
