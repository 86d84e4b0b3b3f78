package mocks

import (
	"context"
	"os"

	"github.com/stretchr/testify/mock"
	m "uscc.dev/pkg/asmcheck/internal/model"
)

// MockCorpusFSAdapter is a mock implementation of adapter.CorpusFSAdapter.
type MockCorpusFSAdapter struct {
	mock.Mock
}

// NewMockCorpusFSAdapter creates a mock that asserts its expectations on cleanup.
func NewMockCorpusFSAdapter(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockCorpusFSAdapter {
	mocked := &MockCorpusFSAdapter{}
	mocked.Mock.Test(t)

	t.Cleanup(func() { mocked.AssertExpectations(t) })

	return mocked
}

// ReadFile provides a mock function.
func (_m *MockCorpusFSAdapter) ReadFile(ctx context.Context, path m.Path) ([]byte, error) {
	ret := _m.Called(ctx, path)

	var data []byte
	if v := ret.Get(0); v != nil {
		data = v.([]byte)
	}

	return data, ret.Error(1)
}

// FileInfo provides a mock function.
func (_m *MockCorpusFSAdapter) FileInfo(ctx context.Context, path m.Path) (os.FileInfo, error) {
	ret := _m.Called(ctx, path)

	var info os.FileInfo
	if v := ret.Get(0); v != nil {
		info = v.(os.FileInfo)
	}

	return info, ret.Error(1)
}

// CreateTempDir provides a mock function.
func (_m *MockCorpusFSAdapter) CreateTempDir(ctx context.Context, pattern string) (m.Path, error) {
	ret := _m.Called(ctx, pattern)

	return ret.Get(0).(m.Path), ret.Error(1)
}

// CopyFile provides a mock function.
func (_m *MockCorpusFSAdapter) CopyFile(ctx context.Context, src, dst m.Path) error {
	ret := _m.Called(ctx, src, dst)

	return ret.Error(0)
}

// AbsPath provides a mock function.
func (_m *MockCorpusFSAdapter) AbsPath(ctx context.Context, path m.Path) (m.Path, error) {
	ret := _m.Called(ctx, path)

	return ret.Get(0).(m.Path), ret.Error(1)
}

// JoinPath provides a mock function.
func (_m *MockCorpusFSAdapter) JoinPath(ctx context.Context, elem ...string) m.Path {
	ret := _m.Called(ctx, elem)

	return ret.Get(0).(m.Path)
}
