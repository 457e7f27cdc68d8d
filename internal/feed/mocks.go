package feed

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/To3Knee/RealmQuest_Go/internal/domain"
)

// MockSource is a mock implementation of the Source interface
type MockSource struct {
	mock.Mock
}

func (m *MockSource) FetchRecent(ctx context.Context, limit int) ([]domain.RollEvent, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RollEvent), args.Error(1)
}

// MockSink is a mock implementation of the Sink interface
type MockSink struct {
	mock.Mock
}

func (m *MockSink) Deliver(ctx context.Context, event domain.RollEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// MockWatermarkStore is a mock implementation of the WatermarkStore interface
type MockWatermarkStore struct {
	mock.Mock
}

func (m *MockWatermarkStore) Get(ctx context.Context, consumer string) (*domain.Watermark, error) {
	args := m.Called(ctx, consumer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Watermark), args.Error(1)
}

func (m *MockWatermarkStore) Save(ctx context.Context, mark domain.Watermark) error {
	args := m.Called(ctx, mark)
	return args.Error(0)
}
