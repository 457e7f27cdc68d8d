package campaign

import "context"

// Repository defines the persistence surface the campaign service needs.
// Campaign state is a row in the system config table, keyed by config key.
type Repository interface {
	// GetConfigValue returns the value for a config key. Missing keys
	// return ("", nil).
	GetConfigValue(ctx context.Context, key string) (string, error)

	// SetConfigValue upserts a config key.
	SetConfigValue(ctx context.Context, key, value string) error
}
