package submission

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockSubmissionService is a mock implementation of SubmissionService
type MockSubmissionService struct {
	mock.Mock
}

// NewMockSubmissionService creates a new MockSubmissionService
func NewMockSubmissionService() *MockSubmissionService {
	return &MockSubmissionService{}
}

func (m *MockSubmissionService) GetStatus(ctx context.Context, submissionID, jwtToken string) (string, error) {
	args := m.Called(ctx, submissionID, jwtToken)
	return args.String(0), args.Error(1)
}

func (m *MockSubmissionService) IsModifiable(ctx context.Context, submissionID, jwtToken string) (bool, error) {
	args := m.Called(ctx, submissionID, jwtToken)
	return args.Bool(0), args.Error(1)
}

func (m *MockSubmissionService) GetTeamName(ctx context.Context, submissionID, jwtToken string) (string, error) {
	args := m.Called(ctx, submissionID, jwtToken)
	return args.String(0), args.Error(1)
}
