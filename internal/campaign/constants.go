package campaign

import "time"

// ConfigKeyActiveCampaign is the system config key holding the active
// campaign id.
const ConfigKeyActiveCampaign = "active_campaign"

// Cache settings for the active-campaign snapshot. The value changes
// rarely, so a short TTL keeps reads cheap without risking long staleness.
const (
	DefaultCacheTTL  = 30 * time.Second
	cacheSize        = 8
	cacheKeyActiveID = "active"
)

// Log messages
const (
	LogMsgActiveCampaignChanged = "Active campaign changed"
	LogMsgConfigReadFailed      = "Failed to read campaign config"
)
