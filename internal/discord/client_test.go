package discord

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIClient_FetchRecent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/game/rolls", r.URL.Path)
		assert.Equal(t, "25", r.URL.Query().Get("limit"))
		assert.Equal(t, "secret-key", r.Header.Get("X-API-Key"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"roll_id":"r-2","campaign_id":"default","created_at_epoch":1000.5,"dice_count":1,"sides":20,"rolls":[17],"modifier":0,"bonus":0,"grand_total":17,"visibility":"public"},
			{"roll_id":"r-1","campaign_id":"default","created_at_epoch":1000.1,"dice_count":1,"sides":6,"rolls":[4],"modifier":0,"bonus":0,"grand_total":4,"visibility":"public"}
		]`))
	}))
	defer server.Close()

	client := NewAPIClient(server.URL, "secret-key")

	events, err := client.FetchRecent(context.Background(), 25)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "r-2", events[0].RollID)
	assert.Equal(t, []int{17}, events[0].Rolls)
	assert.Equal(t, 1000.1, events[1].CreatedAtEpoch)
}

func TestAPIClient_FetchRecent_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"Unauthorized"}`))
	}))
	defer server.Close()

	client := NewAPIClient(server.URL, "wrong-key")

	_, err := client.FetchRecent(context.Background(), 25)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unauthorized")
}

func TestAPIClient_RetriesServerErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewAPIClient(server.URL, "")

	events, err := client.FetchRecent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, events)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestAPIClient_GetActiveCampaign(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/game/campaign/active", r.URL.Path)
		_, _ = w.Write([]byte(`{"campaign_id":"curse-of-strahd"}`))
	}))
	defer server.Close()

	client := NewAPIClient(server.URL, "")

	id, err := client.GetActiveCampaign(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "curse-of-strahd", id)
}
