package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidLimit      = "Invalid limit parameter"

	// Roll operation error messages
	ErrMsgCreateRollFailed   = "Failed to record roll"
	ErrMsgListRollsFailed    = "Failed to retrieve rolls"
	ErrMsgClearRollsFailed   = "Failed to clear rolls"
	ErrMsgStatBlockFailed    = "Failed to roll stat block"
	ErrMsgGetCampaignFailed  = "Failed to retrieve active campaign"
	ErrMsgSetCampaignFailed  = "Failed to set active campaign"
	ErrMsgCampaignIDRequired = "campaign_id is required"
)

// Success messages for API responses
const (
	MsgCampaignActivated = "Campaign activated"
)
