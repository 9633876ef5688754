package handler

import "net/http"

type AppError struct {
	Status  int
	Code    string
	Message string
}

func (e *AppError) Error() string { return e.Message }

var (
	ErrMissingToken       = &AppError{http.StatusUnauthorized, "MISSING_TOKEN", "Authorization header required"}
	ErrInvalidToken       = &AppError{http.StatusUnauthorized, "INVALID_TOKEN", "Token is invalid or expired"}
	ErrInvalidCredentials = &AppError{http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password"}
	ErrInvalidRequest     = &AppError{http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body"}
	ErrValidationFailed   = &AppError{http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed"}
	ErrResourceNotFound   = &AppError{http.StatusNotFound, "RESOURCE_NOT_FOUND", "Resource not found"}
	ErrInternalError      = &AppError{http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred"}

	ErrEmailTaken              = &AppError{http.StatusConflict, "EMAIL_TAKEN", "Email is already registered"}
	ErrInvalidAmount           = &AppError{http.StatusBadRequest, "INVALID_AMOUNT", "Amount must be greater than zero"}
	ErrNoParticipants          = &AppError{http.StatusBadRequest, "NO_PARTICIPANTS", "Expense needs at least one participant"}
	ErrDuplicateParticipant    = &AppError{http.StatusBadRequest, "DUPLICATE_PARTICIPANT", "Participants must be unique"}
	ErrUnknownShareParticipant = &AppError{http.StatusBadRequest, "UNKNOWN_SHARE_PARTICIPANT", "Share references someone outside the expense"}
	ErrInvalidShareWeight      = &AppError{http.StatusBadRequest, "INVALID_SHARE_WEIGHT", "Every participant needs a positive share weight"}
	ErrNotGroupMember          = &AppError{http.StatusUnprocessableEntity, "NOT_GROUP_MEMBER", "User is not a member of this group"}
	ErrMemberExists            = &AppError{http.StatusConflict, "MEMBER_ALREADY_EXISTS", "User is already a member of this group"}
	ErrSelfSettlement          = &AppError{http.StatusUnprocessableEntity, "SELF_SETTLEMENT_NOT_ALLOWED", "Cannot settle with yourself"}

	ErrMissingIdempotencyKey = &AppError{http.StatusBadRequest, "MISSING_IDEMPOTENCY_KEY", "Idempotency-Key header is required"}
	ErrIdempotencyConflict   = &AppError{http.StatusConflict, "IDEMPOTENCY_CONFLICT", "Idempotency key already used with a different request"}
)
