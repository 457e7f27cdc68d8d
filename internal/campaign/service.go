// Package campaign resolves and updates the active campaign, the default
// scope for rolls that do not name a campaign explicitly.
package campaign

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/To3Knee/RealmQuest_Go/internal/domain"
	"github.com/To3Knee/RealmQuest_Go/internal/logger"
)

// Service handles active campaign resolution
type Service interface {
	// GetActiveCampaignID returns the currently active campaign id, or
	// the default campaign when none has been set.
	GetActiveCampaignID(ctx context.Context) (string, error)

	// SetActiveCampaignID makes a campaign the active one.
	SetActiveCampaignID(ctx context.Context, campaignID string) error
}

type service struct {
	repo  Repository
	cache *expirable.LRU[string, string]
}

// NewService creates a campaign service with a TTL-bounded snapshot cache
// over the config table. Pass ttl <= 0 to use the default.
func NewService(repo Repository, ttl time.Duration) Service {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &service{
		repo:  repo,
		cache: expirable.NewLRU[string, string](cacheSize, nil, ttl),
	}
}

func (s *service) GetActiveCampaignID(ctx context.Context) (string, error) {
	if cached, ok := s.cache.Get(cacheKeyActiveID); ok {
		return cached, nil
	}

	value, err := s.repo.GetConfigValue(ctx, ConfigKeyActiveCampaign)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgConfigReadFailed, "error", err)
		return "", fmt.Errorf("%w: %v", domain.ErrQueryFailed, err)
	}

	if strings.TrimSpace(value) == "" {
		value = domain.DefaultCampaignID
	}

	s.cache.Add(cacheKeyActiveID, value)
	return value, nil
}

func (s *service) SetActiveCampaignID(ctx context.Context, campaignID string) error {
	campaignID = strings.TrimSpace(campaignID)
	if campaignID == "" {
		return domain.ErrCampaignRequired
	}

	if err := s.repo.SetConfigValue(ctx, ConfigKeyActiveCampaign, campaignID); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInsertFailed, err)
	}

	// Drop the snapshot so the next read sees the new campaign immediately.
	s.cache.Remove(cacheKeyActiveID)

	logger.FromContext(ctx).Info(LogMsgActiveCampaignChanged, "campaign_id", campaignID)
	return nil
}
