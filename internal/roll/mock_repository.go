package roll

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/To3Knee/RealmQuest_Go/internal/domain"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Insert(ctx context.Context, event *domain.RollEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockRepository) ListRecent(ctx context.Context, campaignID string, limit int) ([]domain.RollEvent, error) {
	args := m.Called(ctx, campaignID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RollEvent), args.Error(1)
}

func (m *MockRepository) DeleteByCampaign(ctx context.Context, campaignID string) (int64, error) {
	args := m.Called(ctx, campaignID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// MockCampaignResolver is a mock implementation of CampaignResolver
type MockCampaignResolver struct {
	mock.Mock
}

func (m *MockCampaignResolver) GetActiveCampaignID(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}
