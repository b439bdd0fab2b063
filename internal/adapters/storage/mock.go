package storage

import (
	"github.com/stretchr/testify/mock"
)

// MockStagingStore is a mock implementation of StagingStore
type MockStagingStore struct {
	mock.Mock
}

// NewMockStagingStore creates a new MockStagingStore
func NewMockStagingStore() *MockStagingStore {
	return &MockStagingStore{}
}

func (m *MockStagingStore) UsableSpace() (uint64, error) {
	args := m.Called()
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockStagingStore) Move(sourcePath, targetPath string) error {
	args := m.Called(sourcePath, targetPath)
	return args.Error(0)
}

func (m *MockStagingStore) Remove(path string) error {
	args := m.Called(path)
	return args.Error(0)
}

func (m *MockStagingStore) Exists(path string) bool {
	args := m.Called(path)
	return args.Bool(0)
}

func (m *MockStagingStore) Size(path string) (int64, error) {
	args := m.Called(path)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStagingStore) EnsureDir(path string) error {
	args := m.Called(path)
	return args.Error(0)
}
