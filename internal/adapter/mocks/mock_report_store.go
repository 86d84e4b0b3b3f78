package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	m "uscc.dev/pkg/asmcheck/internal/model"
)

// MockReportStore is a mock implementation of adapter.ReportStore.
type MockReportStore struct {
	mock.Mock
}

// NewMockReportStore creates a mock that asserts its expectations on cleanup.
func NewMockReportStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockReportStore {
	mocked := &MockReportStore{}
	mocked.Mock.Test(t)

	t.Cleanup(func() { mocked.AssertExpectations(t) })

	return mocked
}

// SaveReport provides a mock function.
func (_m *MockReportStore) SaveReport(ctx context.Context, dir m.Path, report m.Report) error {
	ret := _m.Called(ctx, dir, report)

	return ret.Error(0)
}

// LoadReport provides a mock function.
func (_m *MockReportStore) LoadReport(ctx context.Context, dir m.Path) (m.Report, error) {
	ret := _m.Called(ctx, dir)

	return ret.Get(0).(m.Report), ret.Error(1)
}
