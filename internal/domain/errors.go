package domain

import "errors"

// Error message string constants - single source of truth for error messages
// These double as the machine-readable reason strings returned to API clients.
const (
	// Notation parsing errors
	ErrMsgEmptyNotation      = "empty_notation"
	ErrMsgUnsupportedToken   = "unsupported_token"
	ErrMsgCountOutOfRange    = "count_out_of_range"
	ErrMsgSidesOutOfRange    = "sides_out_of_range"
	ErrMsgKeepDropOutOfRange = "keep_drop_out_of_range"

	// Roll creation errors
	ErrMsgMissingSides     = "missing_required: sides or notation"
	ErrMsgInvalidStatCount = "invalid_stat_count"

	// Store errors
	ErrMsgStoreUnavailable = "database_unavailable"
	ErrMsgInsertFailed     = "roll_insert_failed"
	ErrMsgQueryFailed      = "roll_query_failed"
	ErrMsgDeleteFailed     = "roll_delete_failed"

	// Campaign errors
	ErrMsgCampaignRequired = "campaign_required"
)

// Domain errors for the roll engine.
// Wrap these with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Notation parsing errors - always surface as 422 to clients
	ErrEmptyNotation      = errors.New(ErrMsgEmptyNotation)
	ErrUnsupportedToken   = errors.New(ErrMsgUnsupportedToken)
	ErrCountOutOfRange    = errors.New(ErrMsgCountOutOfRange)
	ErrSidesOutOfRange    = errors.New(ErrMsgSidesOutOfRange)
	ErrKeepDropOutOfRange = errors.New(ErrMsgKeepDropOutOfRange)

	// Roll creation errors
	ErrMissingSides     = errors.New(ErrMsgMissingSides)
	ErrInvalidStatCount = errors.New(ErrMsgInvalidStatCount)

	// Store errors - 503 for unavailable, 500 for write failures
	ErrStoreUnavailable = errors.New(ErrMsgStoreUnavailable)
	ErrInsertFailed     = errors.New(ErrMsgInsertFailed)
	ErrQueryFailed      = errors.New(ErrMsgQueryFailed)
	ErrDeleteFailed     = errors.New(ErrMsgDeleteFailed)

	// Campaign errors
	ErrCampaignRequired = errors.New(ErrMsgCampaignRequired)
)

// IsValidationError reports whether err is a client-side validation error
// (malformed notation or out-of-range dice parameters) rather than a server
// or store failure.
func IsValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrEmptyNotation),
		errors.Is(err, ErrUnsupportedToken),
		errors.Is(err, ErrCountOutOfRange),
		errors.Is(err, ErrSidesOutOfRange),
		errors.Is(err, ErrKeepDropOutOfRange),
		errors.Is(err, ErrMissingSides),
		errors.Is(err, ErrInvalidStatCount):
		return true
	}
	return false
}
