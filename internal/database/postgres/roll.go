package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/To3Knee/RealmQuest_Go/internal/domain"
	"github.com/To3Knee/RealmQuest_Go/internal/roll"
)

type rollRepository struct {
	db *pgxpool.Pool
}

// NewRollRepository creates a new PostgreSQL roll ledger repository
func NewRollRepository(db *pgxpool.Pool) roll.Repository {
	return &rollRepository{db: db}
}

// Insert stores one roll event. The breakdown fields ride as JSONB so the
// event round-trips losslessly regardless of shape.
func (r *rollRepository) Insert(ctx context.Context, event *domain.RollEvent) error {
	query := `
		INSERT INTO roll_events (
			roll_id, campaign_id, created_at_epoch, created_at,
			character_id, character_name, owner_discord_id, player_name,
			dice_count, sides, rolls,
			modifier, bonus, attribute,
			grand_total, roll_type, notation, context, visibility,
			expression, kept, dropped
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
			$12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
	`

	rollsJSON, err := json.Marshal(event.Rolls)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMarshalRolls, err)
	}

	var contextJSON []byte
	if event.Context != nil {
		contextJSON, err = json.Marshal(event.Context)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedToMarshalContext, err)
		}
	}

	var expressionJSON []byte
	if event.Expression != nil {
		expressionJSON, err = json.Marshal(event.Expression)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedToMarshalExpression, err)
		}
	}

	var keptJSON, droppedJSON []byte
	if event.Kept != nil {
		keptJSON, _ = json.Marshal(event.Kept)
	}
	if event.Dropped != nil {
		droppedJSON, _ = json.Marshal(event.Dropped)
	}

	_, err = r.db.Exec(ctx, query,
		event.RollID, event.CampaignID, event.CreatedAtEpoch, event.CreatedAt,
		nullable(event.CharacterID), nullable(event.CharacterName),
		nullable(event.OwnerDiscordID), nullable(event.PlayerName),
		event.DiceCount, event.Sides, rollsJSON,
		event.Modifier, event.Bonus, nullable(event.Attribute),
		event.GrandTotal, nullable(event.RollType), nullable(event.Notation),
		contextJSON, event.Visibility,
		expressionJSON, keptJSON, droppedJSON,
	)
	if err != nil {
		return storeError(ErrMsgFailedToInsertRoll, err)
	}
	return nil
}

// ListRecent returns up to limit events for a campaign, newest first.
func (r *rollRepository) ListRecent(ctx context.Context, campaignID string, limit int) ([]domain.RollEvent, error) {
	query := `
		SELECT roll_id, campaign_id, created_at_epoch, created_at,
			character_id, character_name, owner_discord_id, player_name,
			dice_count, sides, rolls,
			modifier, bonus, attribute,
			grand_total, roll_type, notation, context, visibility,
			expression, kept, dropped
		FROM roll_events
		WHERE campaign_id = $1
		ORDER BY created_at_epoch DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, campaignID, limit)
	if err != nil {
		return nil, storeError(ErrMsgFailedToQueryRolls, err)
	}
	defer rows.Close()

	return scanRollEvents(rows)
}

// DeleteByCampaign removes every event for a campaign
func (r *rollRepository) DeleteByCampaign(ctx context.Context, campaignID string) (int64, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM roll_events WHERE campaign_id = $1`, campaignID)
	if err != nil {
		return 0, storeError(ErrMsgFailedToDeleteRolls, err)
	}
	return result.RowsAffected(), nil
}

// DeleteOlderThan removes events created before the cutoff instant
func (r *rollRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	cutoffEpoch := float64(cutoff.UnixNano()) / 1e9
	result, err := r.db.Exec(ctx, `DELETE FROM roll_events WHERE created_at_epoch < $1`, cutoffEpoch)
	if err != nil {
		return 0, storeError(ErrMsgFailedToDeleteRolls, err)
	}
	return result.RowsAffected(), nil
}

func scanRollEvents(rows pgx.Rows) ([]domain.RollEvent, error) {
	var events []domain.RollEvent

	for rows.Next() {
		var ev domain.RollEvent
		var characterID, characterName, ownerDiscordID, playerName *string
		var attribute, rollType, notation *string
		var rollsJSON, contextJSON, expressionJSON, keptJSON, droppedJSON []byte

		err := rows.Scan(
			&ev.RollID, &ev.CampaignID, &ev.CreatedAtEpoch, &ev.CreatedAt,
			&characterID, &characterName, &ownerDiscordID, &playerName,
			&ev.DiceCount, &ev.Sides, &rollsJSON,
			&ev.Modifier, &ev.Bonus, &attribute,
			&ev.GrandTotal, &rollType, &notation, &contextJSON, &ev.Visibility,
			&expressionJSON, &keptJSON, &droppedJSON,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToScanRoll, err)
		}

		ev.CharacterID = deref(characterID)
		ev.CharacterName = deref(characterName)
		ev.OwnerDiscordID = deref(ownerDiscordID)
		ev.PlayerName = deref(playerName)
		ev.Attribute = deref(attribute)
		ev.RollType = deref(rollType)
		ev.Notation = deref(notation)

		if err := json.Unmarshal(rollsJSON, &ev.Rolls); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToUnmarshalRolls, err)
		}
		if len(contextJSON) > 0 {
			if err := json.Unmarshal(contextJSON, &ev.Context); err != nil {
				return nil, fmt.Errorf("%s: %w", ErrMsgFailedToUnmarshalContext, err)
			}
		}
		if len(expressionJSON) > 0 {
			var detail domain.ExpressionDetail
			if err := json.Unmarshal(expressionJSON, &detail); err != nil {
				return nil, fmt.Errorf("%s: %w", ErrMsgFailedToUnmarshalExpression, err)
			}
			ev.Expression = &detail
		}
		if len(keptJSON) > 0 {
			if err := json.Unmarshal(keptJSON, &ev.Kept); err != nil {
				return nil, fmt.Errorf("%s: %w", ErrMsgFailedToUnmarshalKeptDropped, err)
			}
		}
		if len(droppedJSON) > 0 {
			if err := json.Unmarshal(droppedJSON, &ev.Dropped); err != nil {
				return nil, fmt.Errorf("%s: %w", ErrMsgFailedToUnmarshalKeptDropped, err)
			}
		}

		events = append(events, ev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryRolls, err)
	}
	return events, nil
}

// nullable maps "" to NULL so optional text columns stay NULL-clean.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
