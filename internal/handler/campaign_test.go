package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/To3Knee/RealmQuest_Go/internal/domain"
)

// MockCampaignService is a mock implementation of campaign.Service
type MockCampaignService struct {
	mock.Mock
}

func (m *MockCampaignService) GetActiveCampaignID(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockCampaignService) SetActiveCampaignID(ctx context.Context, campaignID string) error {
	args := m.Called(ctx, campaignID)
	return args.Error(0)
}

func TestHandleGetActiveCampaign(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := new(MockCampaignService)
		mockService.On("GetActiveCampaignID", mock.Anything).Return("spring-campaign", nil)
		handler := NewCampaignHandler(mockService)

		req := httptest.NewRequest("GET", "/campaign/active", nil)
		rec := httptest.NewRecorder()

		handler.HandleGetActiveCampaign(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"campaign_id":"spring-campaign"`)
	})

	t.Run("Store failure", func(t *testing.T) {
		mockService := new(MockCampaignService)
		mockService.On("GetActiveCampaignID", mock.Anything).Return("", domain.ErrQueryFailed)
		handler := NewCampaignHandler(mockService)

		req := httptest.NewRequest("GET", "/campaign/active", nil)
		rec := httptest.NewRecorder()

		handler.HandleGetActiveCampaign(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestHandleSetActiveCampaign(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := new(MockCampaignService)
		mockService.On("SetActiveCampaignID", mock.Anything, "camp-9").Return(nil)
		handler := NewCampaignHandler(mockService)

		req := httptest.NewRequest("POST", "/campaign/active",
			bytes.NewBufferString(`{"campaign_id":"camp-9"}`))
		rec := httptest.NewRecorder()

		handler.HandleSetActiveCampaign(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), MsgCampaignActivated)
		mockService.AssertExpectations(t)
	})

	t.Run("Missing campaign id", func(t *testing.T) {
		mockService := new(MockCampaignService)
		handler := NewCampaignHandler(mockService)

		req := httptest.NewRequest("POST", "/campaign/active",
			bytes.NewBufferString(`{}`))
		rec := httptest.NewRecorder()

		handler.HandleSetActiveCampaign(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockService.AssertNotCalled(t, "SetActiveCampaignID", mock.Anything, mock.Anything)
	})

	t.Run("Invalid JSON", func(t *testing.T) {
		mockService := new(MockCampaignService)
		handler := NewCampaignHandler(mockService)

		req := httptest.NewRequest("POST", "/campaign/active",
			bytes.NewBufferString("not json"))
		rec := httptest.NewRecorder()

		handler.HandleSetActiveCampaign(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
