package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"resultsgen/internal/domain"
	"resultsgen/internal/port"
)

// MockReportWriter is a mock implementation of port.ReportWriter.
type MockReportWriter struct {
	mock.Mock
}

func (m *MockReportWriter) Prepare(ctx context.Context, report *domain.RegionReport) (port.PendingWrite, error) {
	args := m.Called(ctx, report)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(port.PendingWrite), args.Error(1)
}

// MockPendingWrite is a mock implementation of port.PendingWrite.
type MockPendingWrite struct {
	mock.Mock
}

func (m *MockPendingWrite) Path() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockPendingWrite) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockPendingWrite) Discard() error {
	args := m.Called()
	return args.Error(0)
}
