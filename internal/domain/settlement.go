package domain

import (
	"time"

	"github.com/google/uuid"
)

// Settlement records a real-world repayment between two group members:
// FromUserID handed Amount minor units to ToUserID. Recorded settlements
// are folded into subsequent balance computations.
type Settlement struct {
	ID         uuid.UUID
	GroupID    uuid.UUID
	FromUserID uuid.UUID
	ToUserID   uuid.UUID
	Amount     int64
	RecordedBy uuid.UUID
	CreatedAt  time.Time
}
