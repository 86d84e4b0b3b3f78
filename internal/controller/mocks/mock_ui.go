// Package mocks provides testify mocks for the controller UI.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"uscc.dev/pkg/asmcheck/internal/controller"
	m "uscc.dev/pkg/asmcheck/internal/model"
)

// MockUI is a mock implementation of controller.UI.
type MockUI struct {
	mock.Mock
}

// NewMockUI creates a mock that asserts its expectations on cleanup.
func NewMockUI(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockUI {
	mocked := &MockUI{}
	mocked.Mock.Test(t)

	t.Cleanup(func() { mocked.AssertExpectations(t) })

	return mocked
}

// Start provides a mock function.
func (_m *MockUI) Start(ctx context.Context, options ...controller.StartOption) error {
	ret := _m.Called(ctx, options)

	return ret.Error(0)
}

// Close provides a mock function.
func (_m *MockUI) Close(ctx context.Context) {
	_m.Called(ctx)
}

// DisplayCases provides a mock function.
func (_m *MockUI) DisplayCases(ctx context.Context, cases []m.TestCase) error {
	ret := _m.Called(ctx, cases)

	return ret.Error(0)
}

// DisplayRunInfo provides a mock function.
func (_m *MockUI) DisplayRunInfo(ctx context.Context, toolchain m.Toolchain, total int) {
	_m.Called(ctx, toolchain, total)
}

// DisplayStartingCase provides a mock function.
func (_m *MockUI) DisplayStartingCase(ctx context.Context, tc m.TestCase, index int, total int) {
	_m.Called(ctx, tc, index, total)
}

// DisplayCaseResult provides a mock function.
func (_m *MockUI) DisplayCaseResult(ctx context.Context, result m.PipelineResult) {
	_m.Called(ctx, result)
}

// DisplaySummary provides a mock function.
func (_m *MockUI) DisplaySummary(ctx context.Context, results []m.PipelineResult, elapsed time.Duration) {
	_m.Called(ctx, results, elapsed)
}

// DisplayReport provides a mock function.
func (_m *MockUI) DisplayReport(ctx context.Context, report m.Report) error {
	ret := _m.Called(ctx, report)

	return ret.Error(0)
}
