package roll

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/To3Knee/RealmQuest_Go/internal/dice"
	"github.com/To3Knee/RealmQuest_Go/internal/domain"
)

// scriptedRoller returns values from a fixed script, cycling when exhausted.
type scriptedRoller struct {
	values []int
	pos    int
}

func (r *scriptedRoller) Roll(sides int) int {
	v := r.values[r.pos%len(r.values)]
	r.pos++
	if v > sides {
		v = sides
	}
	return v
}

func newTestService(repo *MockRepository, campaigns *MockCampaignResolver, roller dice.Roller) *service {
	svc := NewService(repo, campaigns, roller).(*service)
	svc.now = func() time.Time {
		return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

func TestCreateRoll_Notation(t *testing.T) {
	mockRepo := new(MockRepository)
	mockCampaigns := new(MockCampaignResolver)
	roller := &scriptedRoller{values: []int{14}}
	svc := newTestService(mockRepo, mockCampaigns, roller)

	mockRepo.On("Insert", mock.Anything, mock.AnythingOfType("*domain.RollEvent")).Return(nil)

	event, err := svc.CreateRoll(context.Background(), CreateRequest{
		CampaignID: "camp-1",
		PlayerName: "Alice",
		Notation:   "d20+5",
	})

	require.NoError(t, err)
	assert.Equal(t, "camp-1", event.CampaignID)
	assert.Equal(t, "d20+5", event.Notation)
	assert.Equal(t, 1, event.DiceCount)
	assert.Equal(t, 20, event.Sides)
	assert.Equal(t, []int{14}, event.Rolls)
	assert.Equal(t, 5, event.Modifier, "embedded constant should fold into the modifier")
	assert.Equal(t, 19, event.GrandTotal)
	assert.NotEmpty(t, event.RollID)
	assert.Equal(t, "2025-06-01 12:00:00", event.CreatedAt)
	assert.InDelta(t, float64(svc.now().UnixNano())/1e9, event.CreatedAtEpoch, 0.001)
	assert.Equal(t, domain.VisibilityPublic, event.Visibility)
	require.NotNil(t, event.Expression)
	assert.Equal(t, 19, event.Expression.Total+event.Modifier)

	mockRepo.AssertExpectations(t)
}

func TestCreateRoll_NotationWithCallerModifier(t *testing.T) {
	mockRepo := new(MockRepository)
	mockCampaigns := new(MockCampaignResolver)
	roller := &scriptedRoller{values: []int{10}}
	svc := newTestService(mockRepo, mockCampaigns, roller)

	mockRepo.On("Insert", mock.Anything, mock.Anything).Return(nil)

	event, err := svc.CreateRoll(context.Background(), CreateRequest{
		CampaignID: "camp-1",
		Notation:   "d20+5",
		Modifier:   3,
	})

	require.NoError(t, err)
	// Caller modifier present, so the embedded +5 stays in the expression.
	assert.Equal(t, 3, event.Modifier)
	assert.Equal(t, 18, event.GrandTotal)
}

func TestCreateRoll_NotationNoDiceTerm(t *testing.T) {
	mockRepo := new(MockRepository)
	mockCampaigns := new(MockCampaignResolver)
	svc := newTestService(mockRepo, mockCampaigns, &scriptedRoller{values: []int{1}})

	_, err := svc.CreateRoll(context.Background(), CreateRequest{
		CampaignID: "camp-1",
		Notation:   "5+3",
	})

	assert.ErrorIs(t, err, domain.ErrMissingSides)
	mockRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestCreateRoll_Group(t *testing.T) {
	mockRepo := new(MockRepository)
	mockCampaigns := new(MockCampaignResolver)
	svc := newTestService(mockRepo, mockCampaigns, &scriptedRoller{values: []int{4}})

	mockRepo.On("Insert", mock.Anything, mock.Anything).Return(nil)

	event, err := svc.CreateRoll(context.Background(), CreateRequest{
		CampaignID: "camp-1",
		DiceCount:  3,
		Sides:      6,
		Rolls:      []int{2, 5},
		Modifier:   1,
		Bonus:      2,
	})

	require.NoError(t, err)
	assert.Equal(t, 3, event.DiceCount)
	assert.Equal(t, 6, event.Sides)
	// Two client rolls kept, third padded from the roller.
	assert.Equal(t, []int{2, 5, 4}, event.Rolls)
	assert.Equal(t, 14, event.GrandTotal)
	assert.Nil(t, event.Expression)
}

func TestCreateRoll_GroupClampsClientValues(t *testing.T) {
	mockRepo := new(MockRepository)
	mockCampaigns := new(MockCampaignResolver)
	svc := newTestService(mockRepo, mockCampaigns, &scriptedRoller{values: []int{3}})

	mockRepo.On("Insert", mock.Anything, mock.Anything).Return(nil)

	event, err := svc.CreateRoll(context.Background(), CreateRequest{
		CampaignID: "camp-1",
		DiceCount:  2,
		Sides:      6,
		Rolls:      []int{0, 99},
	})

	require.NoError(t, err)
	assert.Equal(t, []int{1, 6}, event.Rolls)
	assert.Equal(t, 7, event.GrandTotal)
}

func TestCreateRoll_GroupDefaultsCountToOne(t *testing.T) {
	mockRepo := new(MockRepository)
	mockCampaigns := new(MockCampaignResolver)
	svc := newTestService(mockRepo, mockCampaigns, &scriptedRoller{values: []int{5}})

	mockRepo.On("Insert", mock.Anything, mock.Anything).Return(nil)

	event, err := svc.CreateRoll(context.Background(), CreateRequest{
		CampaignID: "camp-1",
		Sides:      8,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, event.DiceCount)
	assert.Len(t, event.Rolls, 1)
}

func TestCreateRoll_MissingSides(t *testing.T) {
	mockRepo := new(MockRepository)
	mockCampaigns := new(MockCampaignResolver)
	svc := newTestService(mockRepo, mockCampaigns, &scriptedRoller{values: []int{1}})

	_, err := svc.CreateRoll(context.Background(), CreateRequest{
		CampaignID: "camp-1",
	})

	assert.ErrorIs(t, err, domain.ErrMissingSides)
}

func TestCreateRoll_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateRequest
		wantErr error
	}{
		{
			name:    "count too large",
			req:     CreateRequest{CampaignID: "c", DiceCount: 999, Sides: 6},
			wantErr: domain.ErrCountOutOfRange,
		},
		{
			name:    "sides too small",
			req:     CreateRequest{CampaignID: "c", DiceCount: 1, Sides: 1},
			wantErr: domain.ErrSidesOutOfRange,
		},
		{
			name:    "bad notation",
			req:     CreateRequest{CampaignID: "c", Notation: "xyz"},
			wantErr: domain.ErrUnsupportedToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockRepository)
			mockCampaigns := new(MockCampaignResolver)
			svc := newTestService(mockRepo, mockCampaigns, &scriptedRoller{values: []int{1}})

			_, err := svc.CreateRoll(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			mockRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateRoll_AdvisoryGrandTotalOverridden(t *testing.T) {
	mockRepo := new(MockRepository)
	mockCampaigns := new(MockCampaignResolver)
	svc := newTestService(mockRepo, mockCampaigns, &scriptedRoller{values: []int{10}})

	mockRepo.On("Insert", mock.Anything, mock.Anything).Return(nil)

	clientTotal := 9999
	event, err := svc.CreateRoll(context.Background(), CreateRequest{
		CampaignID: "camp-1",
		DiceCount:  1,
		Sides:      20,
		Rolls:      []int{10},
		GrandTotal: &clientTotal,
	})

	require.NoError(t, err)
	assert.Equal(t, 10, event.GrandTotal)
}

func TestCreateRoll_ResolvesActiveCampaign(t *testing.T) {
	mockRepo := new(MockRepository)
	mockCampaigns := new(MockCampaignResolver)
	svc := newTestService(mockRepo, mockCampaigns, &scriptedRoller{values: []int{10}})

	mockCampaigns.On("GetActiveCampaignID", mock.Anything).Return("spring-campaign", nil)
	mockRepo.On("Insert", mock.Anything, mock.Anything).Return(nil)

	event, err := svc.CreateRoll(context.Background(), CreateRequest{Sides: 20})

	require.NoError(t, err)
	assert.Equal(t, "spring-campaign", event.CampaignID)
	mockCampaigns.AssertExpectations(t)
}

func TestCreateRoll_CampaignResolverFailureFallsBack(t *testing.T) {
	mockRepo := new(MockRepository)
	mockCampaigns := new(MockCampaignResolver)
	svc := newTestService(mockRepo, mockCampaigns, &scriptedRoller{values: []int{10}})

	mockCampaigns.On("GetActiveCampaignID", mock.Anything).Return("", errors.New("store down"))
	mockRepo.On("Insert", mock.Anything, mock.Anything).Return(nil)

	event, err := svc.CreateRoll(context.Background(), CreateRequest{Sides: 20})

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultCampaignID, event.CampaignID)
}

func TestCreateRoll_InsertFailure(t *testing.T) {
	mockRepo := new(MockRepository)
	mockCampaigns := new(MockCampaignResolver)
	svc := newTestService(mockRepo, mockCampaigns, &scriptedRoller{values: []int{10}})

	mockRepo.On("Insert", mock.Anything, mock.Anything).Return(errors.New("connection refused"))

	_, err := svc.CreateRoll(context.Background(), CreateRequest{CampaignID: "c", Sides: 20})

	assert.ErrorIs(t, err, domain.ErrInsertFailed)
}

func TestCreateRoll_StoreUnavailablePassesThrough(t *testing.T) {
	mockRepo := new(MockRepository)
	mockCampaigns := new(MockCampaignResolver)
	svc := newTestService(mockRepo, mockCampaigns, &scriptedRoller{values: []int{10}})

	repoErr := fmt.Errorf("%w: failed to insert roll event: dial tcp: connection refused",
		domain.ErrStoreUnavailable)
	mockRepo.On("Insert", mock.Anything, mock.Anything).Return(repoErr)

	_, err := svc.CreateRoll(context.Background(), CreateRequest{CampaignID: "c", Sides: 20})

	// Availability failures keep their identity instead of folding into the
	// generic insert sentinel, so handlers can answer with a retryable status.
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.NotErrorIs(t, err, domain.ErrInsertFailed)
}

func TestListRolls_StoreUnavailablePassesThrough(t *testing.T) {
	mockRepo := new(MockRepository)
	mockCampaigns := new(MockCampaignResolver)
	svc := newTestService(mockRepo, mockCampaigns, &scriptedRoller{values: []int{1}})

	repoErr := fmt.Errorf("%w: failed to query roll events", domain.ErrStoreUnavailable)
	mockRepo.On("ListRecent", mock.Anything, "camp-1", 10).Return(nil, repoErr)

	_, err := svc.ListRolls(context.Background(), "camp-1", 10)

	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.NotErrorIs(t, err, domain.ErrQueryFailed)
}

func TestListRolls(t *testing.T) {
	mockRepo := new(MockRepository)
	mockCampaigns := new(MockCampaignResolver)
	svc := newTestService(mockRepo, mockCampaigns, &scriptedRoller{values: []int{1}})

	expected := []domain.RollEvent{{RollID: "r1"}, {RollID: "r2"}}
	mockRepo.On("ListRecent", mock.Anything, "camp-1", 10).Return(expected, nil)

	events, err := svc.ListRolls(context.Background(), "camp-1", 10)

	require.NoError(t, err)
	assert.Equal(t, expected, events)
	mockRepo.AssertExpectations(t)
}

func TestListRolls_ClampsInvalidLimit(t *testing.T) {
	tests := []struct {
		name     string
		limit    int
		expected int
	}{
		{name: "zero clamps to minimum", limit: 0, expected: MinListLimit},
		{name: "negative clamps to minimum", limit: -5, expected: MinListLimit},
		{name: "too large clamps to maximum", limit: 5000, expected: MaxListLimit},
		{name: "in range passes through", limit: 75, expected: 75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockRepository)
			mockCampaigns := new(MockCampaignResolver)
			svc := newTestService(mockRepo, mockCampaigns, &scriptedRoller{values: []int{1}})

			mockRepo.On("ListRecent", mock.Anything, "camp-1", tt.expected).Return([]domain.RollEvent{}, nil)

			_, err := svc.ListRolls(context.Background(), "camp-1", tt.limit)

			require.NoError(t, err)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestListRolls_QueryFailure(t *testing.T) {
	mockRepo := new(MockRepository)
	mockCampaigns := new(MockCampaignResolver)
	svc := newTestService(mockRepo, mockCampaigns, &scriptedRoller{values: []int{1}})

	mockRepo.On("ListRecent", mock.Anything, "camp-1", 10).Return(nil, errors.New("timeout"))

	_, err := svc.ListRolls(context.Background(), "camp-1", 10)

	assert.ErrorIs(t, err, domain.ErrQueryFailed)
}

func TestClearRolls(t *testing.T) {
	mockRepo := new(MockRepository)
	mockCampaigns := new(MockCampaignResolver)
	svc := newTestService(mockRepo, mockCampaigns, &scriptedRoller{values: []int{1}})

	mockRepo.On("DeleteByCampaign", mock.Anything, "camp-1").Return(int64(7), nil)

	deleted, err := svc.ClearRolls(context.Background(), "camp-1")

	require.NoError(t, err)
	assert.Equal(t, int64(7), deleted)
}

func TestClearRolls_DeleteFailure(t *testing.T) {
	mockRepo := new(MockRepository)
	mockCampaigns := new(MockCampaignResolver)
	svc := newTestService(mockRepo, mockCampaigns, &scriptedRoller{values: []int{1}})

	mockRepo.On("DeleteByCampaign", mock.Anything, "camp-1").Return(int64(0), errors.New("timeout"))

	_, err := svc.ClearRolls(context.Background(), "camp-1")

	assert.ErrorIs(t, err, domain.ErrDeleteFailed)
}

func TestRollStatBlock_Defaults(t *testing.T) {
	mockRepo := new(MockRepository)
	mockCampaigns := new(MockCampaignResolver)
	svc := newTestService(mockRepo, mockCampaigns, &scriptedRoller{values: []int{4, 2, 6, 3}})

	mockRepo.On("Insert", mock.Anything, mock.Anything).Return(nil)

	event, err := svc.RollStatBlock(context.Background(), StatBlockRequest{
		CampaignID: "camp-1",
		PlayerName: "Bob",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.RollTypeStatBlock, event.RollType)
	assert.Equal(t, dice.DefaultStatMethod, event.Notation)
	assert.Equal(t, dice.DefaultStatMethod, event.Context[ContextKeyMethod])

	totals, ok := event.Context[ContextKeyTotals].([]int)
	require.True(t, ok)
	assert.Len(t, totals, dice.DefaultStatCount)

	sum := 0
	for _, v := range totals {
		assert.GreaterOrEqual(t, v, 3)
		assert.LessOrEqual(t, v, 18)
		sum += v
	}
	assert.Equal(t, sum, event.GrandTotal)

	stats, ok := event.Context[ContextKeyStats].([]map[string]interface{})
	require.True(t, ok)
	assert.Len(t, stats, dice.DefaultStatCount)
}

func TestRollStatBlock_InvalidMethod(t *testing.T) {
	mockRepo := new(MockRepository)
	mockCampaigns := new(MockCampaignResolver)
	svc := newTestService(mockRepo, mockCampaigns, &scriptedRoller{values: []int{1}})

	_, err := svc.RollStatBlock(context.Background(), StatBlockRequest{
		CampaignID: "camp-1",
		Method:     "banana",
	})

	assert.ErrorIs(t, err, domain.ErrUnsupportedToken)
	mockRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestRollStatBlock_ConstantsOnlyMethod(t *testing.T) {
	mockRepo := new(MockRepository)
	mockCampaigns := new(MockCampaignResolver)
	svc := newTestService(mockRepo, mockCampaigns, &scriptedRoller{values: []int{1}})

	_, err := svc.RollStatBlock(context.Background(), StatBlockRequest{
		CampaignID: "camp-1",
		Method:     "5",
	})

	assert.ErrorIs(t, err, domain.ErrMissingSides)
	mockRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestRollStatBlock_InvalidStatCount(t *testing.T) {
	mockRepo := new(MockRepository)
	mockCampaigns := new(MockCampaignResolver)
	svc := newTestService(mockRepo, mockCampaigns, &scriptedRoller{values: []int{1}})

	_, err := svc.RollStatBlock(context.Background(), StatBlockRequest{
		CampaignID: "camp-1",
		Stats:      99,
	})

	assert.ErrorIs(t, err, domain.ErrInvalidStatCount)
}

func TestCleanupOldRolls(t *testing.T) {
	mockRepo := new(MockRepository)
	mockCampaigns := new(MockCampaignResolver)
	svc := newTestService(mockRepo, mockCampaigns, &scriptedRoller{values: []int{1}})

	wantCutoff := svc.now().AddDate(0, 0, -30)
	mockRepo.On("DeleteOlderThan", mock.Anything, wantCutoff).Return(int64(12), nil)

	deleted, err := svc.CleanupOldRolls(context.Background(), 30)

	require.NoError(t, err)
	assert.Equal(t, int64(12), deleted)
	mockRepo.AssertExpectations(t)
}

func TestTemplates(t *testing.T) {
	mockRepo := new(MockRepository)
	mockCampaigns := new(MockCampaignResolver)
	svc := newTestService(mockRepo, mockCampaigns, &scriptedRoller{values: []int{1}})

	tmpl := svc.Templates()
	require.NotEmpty(t, tmpl)

	// Mutating the returned slice must not affect the catalog.
	tmpl[0].Notation = "mutated"
	assert.NotEqual(t, "mutated", svc.Templates()[0].Notation)
}
