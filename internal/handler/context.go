package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/Aryan-Railtown/bill-splitter/internal/auth"
)

// actorAndGroup extracts the authenticated user and the {id} path segment.
// Requests for a malformed group ID look identical to a missing group.
func actorAndGroup(r *http.Request) (actorID, groupID uuid.UUID, appErr *AppError) {
	actorID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		return uuid.Nil, uuid.Nil, ErrMissingToken
	}

	groupID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, ErrResourceNotFound
	}

	return actorID, groupID, nil
}
