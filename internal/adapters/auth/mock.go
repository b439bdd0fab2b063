package auth

import (
	"github.com/EMBL-EBI-SUBS/file-upload-service/internal/core/domain"

	"github.com/stretchr/testify/mock"
)

// MockTokenVerifier is a mock implementation of TokenVerifier
type MockTokenVerifier struct {
	mock.Mock
}

// NewMockTokenVerifier creates a new MockTokenVerifier
func NewMockTokenVerifier() *MockTokenVerifier {
	return &MockTokenVerifier{}
}

func (m *MockTokenVerifier) Verify(token string) (*domain.TokenClaims, error) {
	args := m.Called(token)
	return args.Get(0).(*domain.TokenClaims), args.Error(1)
}
