package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Aryan-Railtown/bill-splitter/internal/domain"
)

type APIResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data"`
	Error   *APIError `json:"error"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func RespondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func RespondSuccess(w http.ResponseWriter, status int, data any) {
	RespondJSON(w, status, APIResponse{
		Success: true,
		Data:    data,
		Error:   nil,
	})
}

func RespondAppError(w http.ResponseWriter, appErr *AppError, details any) {
	RespondJSON(w, appErr.Status, APIResponse{
		Success: false,
		Data:    nil,
		Error: &APIError{
			Code:    appErr.Code,
			Message: appErr.Message,
			Details: details,
		},
	})
}

func RespondValidationError(w http.ResponseWriter, fields []FieldError) {
	RespondAppError(w, ErrValidationFailed, fields)
}

func RespondDomainError(w http.ResponseWriter, err error) {
	var appErr *AppError

	switch {
	case errors.Is(err, domain.ErrNotFound):
		appErr = ErrResourceNotFound
	case errors.Is(err, domain.ErrEmailTaken):
		appErr = ErrEmailTaken
	case errors.Is(err, domain.ErrUnbalancedLedger):
		// Stored data violating the zero-sum invariant is an internal bug,
		// never a user input problem.
		slog.Error("ledger invariant violation", "error", err)
		appErr = ErrInternalError
	case errors.Is(err, domain.ErrInvalidAmount):
		appErr = ErrInvalidAmount
	case errors.Is(err, domain.ErrNoParticipants):
		appErr = ErrNoParticipants
	case errors.Is(err, domain.ErrDuplicateParticipant):
		appErr = ErrDuplicateParticipant
	case errors.Is(err, domain.ErrUnknownShareParticipant):
		appErr = ErrUnknownShareParticipant
	case errors.Is(err, domain.ErrInvalidShareWeight):
		appErr = ErrInvalidShareWeight
	case errors.Is(err, domain.ErrNotGroupMember):
		appErr = ErrNotGroupMember
	case errors.Is(err, domain.ErrMemberExists):
		appErr = ErrMemberExists
	case errors.Is(err, domain.ErrSelfSettlement):
		appErr = ErrSelfSettlement
	case errors.Is(err, domain.ErrInvalidRequest):
		appErr = ErrInvalidRequest
	default:
		slog.Error("unhandled domain error", "error", err)
		appErr = ErrInternalError
	}

	RespondAppError(w, appErr, nil)
}
