package roll

import (
	"context"
	"time"

	"github.com/To3Knee/RealmQuest_Go/internal/domain"
)

// Repository defines the interface for roll event storage. Each insert is a
// single atomic write; events are immutable once stored.
type Repository interface {
	// Insert stores one roll event.
	Insert(ctx context.Context, event *domain.RollEvent) error

	// ListRecent returns up to limit events for a campaign, newest first.
	ListRecent(ctx context.Context, campaignID string, limit int) ([]domain.RollEvent, error)

	// DeleteByCampaign removes every event for a campaign and returns the
	// number removed. Clearing an empty campaign returns 0, not an error.
	DeleteByCampaign(ctx context.Context, campaignID string) (int64, error)

	// DeleteOlderThan removes events created before the cutoff, across all
	// campaigns, and returns the number removed.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// CampaignResolver resolves the active campaign for requests that omit one.
type CampaignResolver interface {
	GetActiveCampaignID(ctx context.Context) (string, error)
}
