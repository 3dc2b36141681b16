package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"resultsgen/internal/domain"
)

// MockEntryLoader is a mock implementation of port.EntryLoader.
type MockEntryLoader struct {
	mock.Mock
}

func (m *MockEntryLoader) Load(ctx context.Context, path string) ([]domain.RawEntry, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RawEntry), args.Error(1)
}
