// Package mocks provides testify mocks for the domain interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	m "uscc.dev/pkg/asmcheck/internal/model"
)

// MockPipeline is a mock implementation of domain.Pipeline.
type MockPipeline struct {
	mock.Mock
}

// NewMockPipeline creates a mock that asserts its expectations on cleanup.
func NewMockPipeline(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockPipeline {
	mocked := &MockPipeline{}
	mocked.Mock.Test(t)

	t.Cleanup(func() { mocked.AssertExpectations(t) })

	return mocked
}

// Setup provides a mock function.
func (_m *MockPipeline) Setup(ctx context.Context) error {
	ret := _m.Called(ctx)

	return ret.Error(0)
}

// Run provides a mock function.
func (_m *MockPipeline) Run(ctx context.Context, tc m.TestCase) m.PipelineResult {
	ret := _m.Called(ctx, tc)

	if fn, ok := ret.Get(0).(func(context.Context, m.TestCase) m.PipelineResult); ok {
		return fn(ctx, tc)
	}

	return ret.Get(0).(m.PipelineResult)
}

// Toolchain provides a mock function.
func (_m *MockPipeline) Toolchain() m.Toolchain {
	ret := _m.Called()

	return ret.Get(0).(m.Toolchain)
}
