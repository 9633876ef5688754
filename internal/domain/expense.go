package domain

import (
	"time"

	"github.com/google/uuid"
)

// Expense is one shared cost inside a group. Amount is in minor currency
// units (cents). The payer need not appear among the shares; each share
// carries a positive weight, 1 for every participant of an equal split.
type Expense struct {
	ID          uuid.UUID
	GroupID     uuid.UUID
	PaidBy      uuid.UUID
	Description string
	Amount      int64
	Shares      []ExpenseShare
	CreatedBy   uuid.UUID
	CreatedAt   time.Time
}

type ExpenseShare struct {
	ExpenseID uuid.UUID
	UserID    uuid.UUID
	Weight    int64
}
