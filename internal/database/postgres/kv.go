package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/To3Knee/RealmQuest_Go/internal/campaign"
	"github.com/To3Knee/RealmQuest_Go/internal/domain"
	"github.com/To3Knee/RealmQuest_Go/internal/feed"
)

type systemConfigRepository struct {
	db *pgxpool.Pool
}

// NewSystemConfigRepository creates a PostgreSQL config repository backing
// the campaign service.
func NewSystemConfigRepository(db *pgxpool.Pool) campaign.Repository {
	return &systemConfigRepository{db: db}
}

func (r *systemConfigRepository) GetConfigValue(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRow(ctx,
		`SELECT config_value FROM system_config WHERE config_key = $1`, key,
	).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", storeError(ErrMsgFailedToGetConfigValue, err)
	}
	return value, nil
}

func (r *systemConfigRepository) SetConfigValue(ctx context.Context, key, value string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO system_config (config_key, config_value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (config_key)
		DO UPDATE SET config_value = EXCLUDED.config_value, updated_at = NOW()
	`, key, value)
	if err != nil {
		return storeError(ErrMsgFailedToSetConfigValue, err)
	}
	return nil
}

type watermarkStore struct {
	db *pgxpool.Pool
}

// NewWatermarkStore creates a PostgreSQL watermark store for feed consumers.
func NewWatermarkStore(db *pgxpool.Pool) feed.WatermarkStore {
	return &watermarkStore{db: db}
}

func (s *watermarkStore) Get(ctx context.Context, consumer string) (*domain.Watermark, error) {
	var mark domain.Watermark
	var rollID *string
	var updatedAt time.Time

	err := s.db.QueryRow(ctx,
		`SELECT consumer, epoch, roll_id, updated_at FROM feed_watermarks WHERE consumer = $1`,
		consumer,
	).Scan(&mark.Consumer, &mark.Epoch, &rollID, &updatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storeError(ErrMsgFailedToGetWatermark, err)
	}

	mark.RollID = deref(rollID)
	mark.UpdatedAt = updatedAt.UTC().Format(feed.UpdatedAtLayout)
	return &mark, nil
}

func (s *watermarkStore) Save(ctx context.Context, mark domain.Watermark) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO feed_watermarks (consumer, epoch, roll_id, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (consumer)
		DO UPDATE SET epoch = EXCLUDED.epoch, roll_id = EXCLUDED.roll_id, updated_at = NOW()
	`, mark.Consumer, mark.Epoch, nullable(mark.RollID))
	if err != nil {
		return storeError(ErrMsgFailedToUpsertWatermark, err)
	}
	return nil
}
