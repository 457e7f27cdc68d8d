package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/To3Knee/RealmQuest_Go/internal/domain"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response. Reason carries the
// machine-readable error kind so clients can branch without string parsing.
type ErrorResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
}

// DeletedResponse reports how many events a clear operation removed
type DeletedResponse struct {
	Deleted int64 `json:"deleted"`
}

// Helper functions for responding

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// Get a buffer from the pool to reduce allocations
	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Headers are already sent; all we can do is log.
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message, reason string) {
	respondJSON(w, status, ErrorResponse{Error: message, Reason: reason})
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"
	ErrMsgBadNotationError   = "Could not understand that dice notation"
	ErrMsgBadDiceParamsError = "Dice parameters are out of range"
	ErrMsgMissingSidesError  = "Either sides or notation must be provided"
	ErrMsgBadStatCountError  = "Stat count must be between 1 and 20"
	ErrMsgUnavailableError   = "Server is temporarily unavailable. Please try again later."
	ErrMsgCampaignReqError   = "A campaign id is required"
)

// mapServiceError maps domain errors to an HTTP status, a user-facing
// message, and the machine-readable reason. Validation failures surface as
// 422 so clients can distinguish bad input from server trouble.
func mapServiceError(err error) (int, string, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError, ""
	}

	switch {
	case errors.Is(err, domain.ErrEmptyNotation):
		return http.StatusUnprocessableEntity, ErrMsgBadNotationError, domain.ErrMsgEmptyNotation
	case errors.Is(err, domain.ErrUnsupportedToken):
		return http.StatusUnprocessableEntity, ErrMsgBadNotationError, domain.ErrMsgUnsupportedToken
	case errors.Is(err, domain.ErrCountOutOfRange):
		return http.StatusUnprocessableEntity, ErrMsgBadDiceParamsError, domain.ErrMsgCountOutOfRange
	case errors.Is(err, domain.ErrSidesOutOfRange):
		return http.StatusUnprocessableEntity, ErrMsgBadDiceParamsError, domain.ErrMsgSidesOutOfRange
	case errors.Is(err, domain.ErrKeepDropOutOfRange):
		return http.StatusUnprocessableEntity, ErrMsgBadDiceParamsError, domain.ErrMsgKeepDropOutOfRange
	case errors.Is(err, domain.ErrMissingSides):
		return http.StatusUnprocessableEntity, ErrMsgMissingSidesError, domain.ErrMsgMissingSides
	case errors.Is(err, domain.ErrInvalidStatCount):
		return http.StatusUnprocessableEntity, ErrMsgBadStatCountError, domain.ErrMsgInvalidStatCount
	case errors.Is(err, domain.ErrCampaignRequired):
		return http.StatusBadRequest, ErrMsgCampaignReqError, domain.ErrMsgCampaignRequired
	case errors.Is(err, domain.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, ErrMsgUnavailableError, domain.ErrMsgStoreUnavailable
	case errors.Is(err, domain.ErrInsertFailed):
		return http.StatusInternalServerError, ErrMsgGenericServerError, domain.ErrMsgInsertFailed
	case errors.Is(err, domain.ErrQueryFailed):
		return http.StatusInternalServerError, ErrMsgGenericServerError, domain.ErrMsgQueryFailed
	case errors.Is(err, domain.ErrDeleteFailed):
		return http.StatusInternalServerError, ErrMsgGenericServerError, domain.ErrMsgDeleteFailed
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError, ""
}

// respondServiceError logs and writes the mapped error response
func respondServiceError(w http.ResponseWriter, err error) {
	status, message, reason := mapServiceError(err)
	respondError(w, status, message, reason)
}
