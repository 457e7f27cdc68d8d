package postgres

// Error Messages - Roll Ledger Operations
const (
	ErrMsgFailedToMarshalRolls         = "failed to marshal rolls"
	ErrMsgFailedToMarshalContext       = "failed to marshal context"
	ErrMsgFailedToMarshalExpression    = "failed to marshal expression"
	ErrMsgFailedToInsertRoll           = "failed to insert roll event"
	ErrMsgFailedToQueryRolls           = "failed to query roll events"
	ErrMsgFailedToScanRoll             = "failed to scan roll event"
	ErrMsgFailedToDeleteRolls          = "failed to delete roll events"
	ErrMsgFailedToUnmarshalRolls       = "failed to unmarshal rolls"
	ErrMsgFailedToUnmarshalContext     = "failed to unmarshal context"
	ErrMsgFailedToUnmarshalExpression  = "failed to unmarshal expression"
	ErrMsgFailedToUnmarshalKeptDropped = "failed to unmarshal kept/dropped"
)

// Error Messages - Config and Watermark Operations
const (
	ErrMsgFailedToGetConfigValue  = "failed to get config value"
	ErrMsgFailedToSetConfigValue  = "failed to set config value"
	ErrMsgFailedToGetWatermark    = "failed to get watermark"
	ErrMsgFailedToUpsertWatermark = "failed to upsert watermark"
)
