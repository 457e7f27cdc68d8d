// Package roll implements the roll ledger: evaluation of incoming dice
// requests and the durable, campaign-scoped store of roll events.
package roll

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/To3Knee/RealmQuest_Go/internal/dice"
	"github.com/To3Knee/RealmQuest_Go/internal/domain"
	"github.com/To3Knee/RealmQuest_Go/internal/logger"
	"github.com/To3Knee/RealmQuest_Go/internal/metrics"
)

// CreateRequest carries everything a client may send when creating a roll.
// Either DiceCount+Sides (with optional pre-rolled values) or Notation must
// be present. GrandTotal is advisory only; the server always recomputes it.
type CreateRequest struct {
	CampaignID string

	CharacterID    string
	CharacterName  string
	OwnerDiscordID string
	PlayerName     string

	DiceCount int
	Sides     int
	Rolls     []int

	Modifier  int
	Bonus     int
	Attribute string

	GrandTotal *int

	RollType   string
	Notation   string
	Context    map[string]interface{}
	Visibility string
}

// StatBlockRequest describes a stat-block rolling request.
type StatBlockRequest struct {
	CampaignID string
	Method     string
	Stats      int

	CharacterID    string
	CharacterName  string
	OwnerDiscordID string
	PlayerName     string
	Visibility     string
}

// Service handles roll evaluation and ledger business logic
type Service interface {
	// CreateRoll evaluates and persists one roll event.
	CreateRoll(ctx context.Context, req CreateRequest) (*domain.RollEvent, error)

	// ListRolls returns up to limit events for a campaign, newest first.
	ListRolls(ctx context.Context, campaignID string, limit int) ([]domain.RollEvent, error)

	// ClearRolls deletes all events for a campaign and returns the count.
	ClearRolls(ctx context.Context, campaignID string) (int64, error)

	// RollStatBlock rolls a full stat block and persists it as one event.
	RollStatBlock(ctx context.Context, req StatBlockRequest) (*domain.RollEvent, error)

	// Templates returns the static notation preset catalog.
	Templates() []domain.RollTemplate

	// CleanupOldRolls removes events older than the retention period.
	CleanupOldRolls(ctx context.Context, retentionDays int) (int64, error)
}

type service struct {
	repo      Repository
	campaigns CampaignResolver
	roller    dice.Roller
	now       func() time.Time
}

// NewService creates a new roll ledger service. The roller is injected so
// tests can use a seeded source; production passes dice.CryptoRoller.
func NewService(repo Repository, campaigns CampaignResolver, roller dice.Roller) Service {
	return &service{
		repo:      repo,
		campaigns: campaigns,
		roller:    roller,
		now:       time.Now,
	}
}

func (s *service) CreateRoll(ctx context.Context, req CreateRequest) (*domain.RollEvent, error) {
	log := logger.FromContext(ctx)

	event := &domain.RollEvent{
		CampaignID:     s.resolveCampaign(ctx, req.CampaignID),
		CharacterID:    req.CharacterID,
		CharacterName:  req.CharacterName,
		OwnerDiscordID: req.OwnerDiscordID,
		PlayerName:     req.PlayerName,
		Attribute:      req.Attribute,
		Bonus:          req.Bonus,
		RollType:       req.RollType,
		Context:        req.Context,
		Visibility:     normalizeVisibility(req.Visibility),
	}

	notation := strings.TrimSpace(req.Notation)
	useNotation := req.Sides == 0 && notation != ""

	if useNotation {
		if err := s.evaluateNotation(event, notation, req.Modifier, req.Bonus); err != nil {
			return nil, err
		}
	} else {
		if err := s.evaluateGroup(event, req); err != nil {
			return nil, err
		}
		event.Notation = notation
	}

	// Server-assigned identity and timestamps; never client-supplied.
	now := s.now()
	event.RollID = uuid.NewString()
	event.CreatedAtEpoch = float64(now.UnixNano()) / 1e9
	event.CreatedAt = now.Format(CreatedAtLayout)

	// The grand total was recomputed above from the normalized rolls. A
	// client-supplied total is advisory only; mismatches are overridden
	// silently rather than rejected.
	if req.GrandTotal != nil && *req.GrandTotal != event.GrandTotal {
		log.Debug("Client grand total overridden",
			"client_total", *req.GrandTotal,
			"computed_total", event.GrandTotal)
	}

	if err := s.repo.Insert(ctx, event); err != nil {
		return nil, wrapRepoError(domain.ErrInsertFailed, err)
	}

	metrics.RollsCreated.WithLabelValues(rollTypeLabel(event.RollType)).Inc()
	log.Info(LogMsgRollCreated,
		"roll_id", event.RollID,
		"campaign_id", event.CampaignID,
		"notation", event.Notation,
		"grand_total", event.GrandTotal)

	return event, nil
}

// evaluateNotation fills the event from a parsed and evaluated expression.
// The first dice term doubles as the representative simple group so legacy
// consumers keep working.
func (s *service) evaluateNotation(event *domain.RollEvent, notation string, modifier, bonus int) error {
	expr, err := dice.ParseNotation(notation)
	if err != nil {
		metrics.NotationParseFailures.WithLabelValues(parseFailureReason(err)).Inc()
		return err
	}
	if len(expr.Terms) == 0 {
		// A constants-only expression carries no dice to roll.
		return fmt.Errorf("%w: notation %q has no dice term", domain.ErrMissingSides, notation)
	}

	detail := dice.Evaluate(expr, s.roller)
	event.Modifier = dice.ReconcileModifier(&detail, modifier, bonus)
	event.GrandTotal = dice.GrandTotal(detail, event.Modifier, bonus)

	first := detail.Terms[0]
	event.DiceCount = first.Count
	event.Sides = first.Sides
	event.Rolls = first.Rolls
	event.Kept = first.Kept
	event.Dropped = first.Dropped
	event.Notation = detail.Notation
	event.Expression = &detail

	return nil
}

// evaluateGroup fills the event from raw dice parameters, normalizing any
// client-provided roll values.
func (s *service) evaluateGroup(event *domain.RollEvent, req CreateRequest) error {
	if req.Sides == 0 {
		return domain.ErrMissingSides
	}

	count := req.DiceCount
	if count == 0 {
		count = 1
	}
	if count < dice.MinCount || count > dice.MaxCount {
		return fmt.Errorf("%w: %d", domain.ErrCountOutOfRange, count)
	}
	if req.Sides < dice.MinSides || req.Sides > dice.MaxSides {
		return fmt.Errorf("%w: %d", domain.ErrSidesOutOfRange, req.Sides)
	}

	rolls := dice.NormalizeGroupRolls(count, req.Sides, req.Rolls, s.roller)

	total := 0
	for _, v := range rolls {
		total += v
	}

	event.DiceCount = count
	event.Sides = req.Sides
	event.Rolls = rolls
	event.Modifier = req.Modifier
	event.GrandTotal = total + req.Modifier + req.Bonus

	return nil
}

func (s *service) ListRolls(ctx context.Context, campaignID string, limit int) ([]domain.RollEvent, error) {
	// Out-of-range limits clamp to the bounds rather than resetting.
	if limit < MinListLimit {
		limit = MinListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	cid := s.resolveCampaign(ctx, campaignID)
	events, err := s.repo.ListRecent(ctx, cid, limit)
	if err != nil {
		return nil, wrapRepoError(domain.ErrQueryFailed, err)
	}
	return events, nil
}

func (s *service) ClearRolls(ctx context.Context, campaignID string) (int64, error) {
	cid := s.resolveCampaign(ctx, campaignID)
	deleted, err := s.repo.DeleteByCampaign(ctx, cid)
	if err != nil {
		return 0, wrapRepoError(domain.ErrDeleteFailed, err)
	}

	metrics.RollsCleared.Add(float64(deleted))
	logger.FromContext(ctx).Info(LogMsgRollsCleared, "campaign_id", cid, "deleted", deleted)
	return deleted, nil
}

func (s *service) RollStatBlock(ctx context.Context, req StatBlockRequest) (*domain.RollEvent, error) {
	result, err := dice.EvaluateStatBlock(req.Method, req.Stats, s.roller)
	if err != nil {
		return nil, err
	}

	stats := make([]map[string]interface{}, 0, len(result.Stats))
	for _, detail := range result.Stats {
		term := detail.Terms[0]
		stats = append(stats, map[string]interface{}{
			"rolls":   term.Rolls,
			"kept":    term.Kept,
			"dropped": term.Dropped,
			"total":   detail.Total,
		})
	}

	first := result.Stats[0].Terms[0]
	event := &domain.RollEvent{
		CampaignID:     s.resolveCampaign(ctx, req.CampaignID),
		CharacterID:    req.CharacterID,
		CharacterName:  req.CharacterName,
		OwnerDiscordID: req.OwnerDiscordID,
		PlayerName:     req.PlayerName,
		DiceCount:      first.Count,
		Sides:          first.Sides,
		Rolls:          first.Rolls,
		Kept:           first.Kept,
		Dropped:        first.Dropped,
		GrandTotal:     result.GrandTotal,
		RollType:       domain.RollTypeStatBlock,
		Notation:       result.Method,
		Visibility:     normalizeVisibility(req.Visibility),
		Context: map[string]interface{}{
			ContextKeyMethod: result.Method,
			ContextKeyStats:  stats,
			ContextKeyTotals: result.Totals,
		},
	}

	now := s.now()
	event.RollID = uuid.NewString()
	event.CreatedAtEpoch = float64(now.UnixNano()) / 1e9
	event.CreatedAt = now.Format(CreatedAtLayout)

	if err := s.repo.Insert(ctx, event); err != nil {
		return nil, wrapRepoError(domain.ErrInsertFailed, err)
	}

	metrics.RollsCreated.WithLabelValues(domain.RollTypeStatBlock).Inc()
	logger.FromContext(ctx).Info(LogMsgRollCreated,
		"roll_id", event.RollID,
		"campaign_id", event.CampaignID,
		"roll_type", event.RollType,
		"grand_total", event.GrandTotal)

	return event, nil
}

func (s *service) Templates() []domain.RollTemplate {
	return Templates()
}

func (s *service) CleanupOldRolls(ctx context.Context, retentionDays int) (int64, error) {
	cutoff := s.now().AddDate(0, 0, -retentionDays)
	return s.repo.DeleteOlderThan(ctx, cutoff)
}

// resolveCampaign returns the caller-supplied campaign id, or falls back to
// the active campaign. Resolution failures degrade to the default campaign
// rather than failing the roll.
func (s *service) resolveCampaign(ctx context.Context, campaignID string) string {
	if cid := strings.TrimSpace(campaignID); cid != "" {
		return cid
	}

	cid, err := s.campaigns.GetActiveCampaignID(ctx)
	if err != nil || strings.TrimSpace(cid) == "" {
		if err != nil {
			logger.FromContext(ctx).Warn(LogMsgCampaignResolveFailed, "error", err)
		}
		return domain.DefaultCampaignID
	}
	return cid
}

func normalizeVisibility(v string) string {
	if strings.TrimSpace(v) == "" {
		return domain.VisibilityPublic
	}
	return v
}

func rollTypeLabel(rollType string) string {
	if rollType == "" {
		return domain.RollTypeCustom
	}
	return rollType
}

// wrapRepoError folds a repository error into the given sentinel. Store
// availability failures pass through unchanged so handlers can map them to
// a retryable status instead of a generic write failure.
func wrapRepoError(sentinel, err error) error {
	if errors.Is(err, domain.ErrStoreUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %v", sentinel, err)
}

// parseFailureReason maps a parse error to its metric label. Labels match
// the machine-readable reasons the API returns.
func parseFailureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptyNotation):
		return domain.ErrMsgEmptyNotation
	case errors.Is(err, domain.ErrCountOutOfRange):
		return domain.ErrMsgCountOutOfRange
	case errors.Is(err, domain.ErrSidesOutOfRange):
		return domain.ErrMsgSidesOutOfRange
	case errors.Is(err, domain.ErrKeepDropOutOfRange):
		return domain.ErrMsgKeepDropOutOfRange
	default:
		return domain.ErrMsgUnsupportedToken
	}
}
