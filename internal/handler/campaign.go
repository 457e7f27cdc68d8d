package handler

import (
	"net/http"

	"github.com/To3Knee/RealmQuest_Go/internal/campaign"
	"github.com/To3Knee/RealmQuest_Go/internal/logger"
)

// CampaignHandler serves active campaign resolution
type CampaignHandler struct {
	service campaign.Service
}

// NewCampaignHandler creates a new campaign handler
func NewCampaignHandler(service campaign.Service) *CampaignHandler {
	return &CampaignHandler{service: service}
}

// ActiveCampaignResponse reports the active campaign id
type ActiveCampaignResponse struct {
	CampaignID string `json:"campaign_id"`
}

// SetActiveCampaignRequest is the JSON body for POST /campaign/active
type SetActiveCampaignRequest struct {
	CampaignID string `json:"campaign_id" validate:"required,max=100"`
}

// HandleGetActiveCampaign returns the currently active campaign
func (h *CampaignHandler) HandleGetActiveCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := h.service.GetActiveCampaignID(r.Context())
	if err != nil {
		logger.FromContext(r.Context()).Error(ErrMsgGetCampaignFailed, "error", err)
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, ActiveCampaignResponse{CampaignID: id})
}

// HandleSetActiveCampaign makes a campaign the active one
func (h *CampaignHandler) HandleSetActiveCampaign(w http.ResponseWriter, r *http.Request) {
	var req SetActiveCampaignRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Set active campaign"); err != nil {
		return
	}

	if err := h.service.SetActiveCampaignID(r.Context(), req.CampaignID); err != nil {
		logger.FromContext(r.Context()).Error(ErrMsgSetCampaignFailed, "error", err)
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgCampaignActivated})
}
