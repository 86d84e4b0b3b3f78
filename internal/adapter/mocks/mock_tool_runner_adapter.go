// Package mocks provides testify mocks for the adapter ports.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"uscc.dev/pkg/asmcheck/internal/adapter"
)

// MockToolRunnerAdapter is a mock implementation of adapter.ToolRunnerAdapter.
// Expectations receive the tool arguments as a single []string.
type MockToolRunnerAdapter struct {
	mock.Mock
}

// NewMockToolRunnerAdapter creates a mock that asserts its expectations on cleanup.
func NewMockToolRunnerAdapter(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockToolRunnerAdapter {
	mocked := &MockToolRunnerAdapter{}
	mocked.Mock.Test(t)

	t.Cleanup(func() { mocked.AssertExpectations(t) })

	return mocked
}

// Run provides a mock function.
func (_m *MockToolRunnerAdapter) Run(ctx context.Context, workDir string, name string, args ...string) (adapter.ToolResult, error) {
	if args == nil {
		args = []string{}
	}

	ret := _m.Called(ctx, workDir, name, args)

	if fn, ok := ret.Get(0).(func(context.Context, string, string, ...string) (adapter.ToolResult, error)); ok {
		return fn(ctx, workDir, name, args...)
	}

	return ret.Get(0).(adapter.ToolResult), ret.Error(1)
}
