package handler

import (
	"net/http"
	"strconv"

	"github.com/To3Knee/RealmQuest_Go/internal/domain"
	"github.com/To3Knee/RealmQuest_Go/internal/logger"
	"github.com/To3Knee/RealmQuest_Go/internal/roll"
)

// RollHandler serves the roll ledger endpoints
type RollHandler struct {
	service roll.Service
}

// NewRollHandler creates a new roll handler
func NewRollHandler(service roll.Service) *RollHandler {
	return &RollHandler{service: service}
}

// CreateRollRequest is the JSON body for POST /roll. Either dice_count+sides
// (with optional pre-rolled values) or notation must be supplied; the
// service enforces that and all range checks.
type CreateRollRequest struct {
	CampaignID string `json:"campaign_id"`

	CharacterID    string `json:"character_id"`
	CharacterName  string `json:"character_name" validate:"max=200"`
	OwnerDiscordID string `json:"owner_discord_id"`
	PlayerName     string `json:"player_name" validate:"max=200"`

	DiceCount int   `json:"dice_count"`
	Sides     int   `json:"sides"`
	Rolls     []int `json:"rolls"`

	Modifier  int    `json:"modifier"`
	Bonus     int    `json:"bonus"`
	Attribute string `json:"attribute" validate:"max=100"`

	GrandTotal *int `json:"grand_total"`

	RollType   string                 `json:"roll_type" validate:"max=50"`
	Notation   string                 `json:"notation" validate:"max=200"`
	Context    map[string]interface{} `json:"context"`
	Visibility string                 `json:"visibility" validate:"visibility"`
}

// StatBlockRequest is the JSON body for POST /roll/stat-block
type StatBlockRequest struct {
	CampaignID string `json:"campaign_id"`
	Method     string `json:"method" validate:"max=200"`
	Stats      int    `json:"stats" validate:"min=0,max=20"`

	CharacterID    string `json:"character_id"`
	CharacterName  string `json:"character_name" validate:"max=200"`
	OwnerDiscordID string `json:"owner_discord_id"`
	PlayerName     string `json:"player_name" validate:"max=200"`
	Visibility     string `json:"visibility" validate:"visibility"`
}

// HandleCreateRoll evaluates and records one roll event
func (h *RollHandler) HandleCreateRoll(w http.ResponseWriter, r *http.Request) {
	var req CreateRollRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Create roll"); err != nil {
		return
	}

	log := logger.FromContext(r.Context())
	LogRequestFields(log, "campaign_id", req.CampaignID, "notation", req.Notation, "sides", req.Sides)

	event, err := h.service.CreateRoll(r.Context(), roll.CreateRequest{
		CampaignID:     req.CampaignID,
		CharacterID:    req.CharacterID,
		CharacterName:  req.CharacterName,
		OwnerDiscordID: req.OwnerDiscordID,
		PlayerName:     req.PlayerName,
		DiceCount:      req.DiceCount,
		Sides:          req.Sides,
		Rolls:          req.Rolls,
		Modifier:       req.Modifier,
		Bonus:          req.Bonus,
		Attribute:      req.Attribute,
		GrandTotal:     req.GrandTotal,
		RollType:       req.RollType,
		Notation:       req.Notation,
		Context:        req.Context,
		Visibility:     req.Visibility,
	})
	if err != nil {
		log.Error(ErrMsgCreateRollFailed, "error", err)
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, event)
}

// HandleListRolls returns recent roll events, newest first
func (h *RollHandler) HandleListRolls(w http.ResponseWriter, r *http.Request) {
	limitStr := GetOptionalQueryParam(r, "limit", strconv.Itoa(roll.DefaultListLimit))
	limit, err := strconv.Atoi(limitStr)
	if err != nil {
		http.Error(w, ErrMsgInvalidLimit, http.StatusBadRequest)
		return
	}

	campaignID := GetOptionalQueryParam(r, "campaign_id", "")

	events, err := h.service.ListRolls(r.Context(), campaignID, limit)
	if err != nil {
		logger.FromContext(r.Context()).Error(ErrMsgListRollsFailed, "error", err)
		respondServiceError(w, err)
		return
	}

	// Serve an empty array rather than null for no events.
	if events == nil {
		events = []domain.RollEvent{}
	}
	respondJSON(w, http.StatusOK, events)
}

// HandleClearRolls deletes every event for a campaign. Wired to both
// DELETE /rolls and POST /rolls/clear so form-only clients can clear too.
func (h *RollHandler) HandleClearRolls(w http.ResponseWriter, r *http.Request) {
	campaignID := GetOptionalQueryParam(r, "campaign_id", "")
	if campaignID == "" && r.Method == http.MethodPost {
		campaignID = r.FormValue("campaign_id")
	}

	deleted, err := h.service.ClearRolls(r.Context(), campaignID)
	if err != nil {
		logger.FromContext(r.Context()).Error(ErrMsgClearRollsFailed, "error", err)
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, DeletedResponse{Deleted: deleted})
}

// HandleStatBlock rolls a full stat block as one event
func (h *RollHandler) HandleStatBlock(w http.ResponseWriter, r *http.Request) {
	var req StatBlockRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Roll stat block"); err != nil {
		return
	}

	event, err := h.service.RollStatBlock(r.Context(), roll.StatBlockRequest{
		CampaignID:     req.CampaignID,
		Method:         req.Method,
		Stats:          req.Stats,
		CharacterID:    req.CharacterID,
		CharacterName:  req.CharacterName,
		OwnerDiscordID: req.OwnerDiscordID,
		PlayerName:     req.PlayerName,
		Visibility:     req.Visibility,
	})
	if err != nil {
		logger.FromContext(r.Context()).Error(ErrMsgStatBlockFailed, "error", err)
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, event)
}

// HandleGetTemplates serves the static notation preset catalog
func (h *RollHandler) HandleGetTemplates(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.service.Templates())
}
