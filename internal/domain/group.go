package domain

import (
	"time"

	"github.com/google/uuid"
)

// Group is a set of users who share expenses in a single currency.
type Group struct {
	ID        uuid.UUID
	Name      string
	CreatedBy uuid.UUID
	CreatedAt time.Time
}

type GroupMember struct {
	GroupID  uuid.UUID
	UserID   uuid.UUID
	Name     string
	Email    string
	JoinedAt time.Time
}
