package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Aryan-Railtown/bill-splitter/internal/domain"
	"github.com/Aryan-Railtown/bill-splitter/internal/logging"
	"github.com/Aryan-Railtown/bill-splitter/internal/split"
)

type AddExpenseRequest struct {
	GroupID      uuid.UUID
	ActorID      uuid.UUID
	PaidBy       uuid.UUID
	Description  string
	Amount       int64
	Participants []uuid.UUID
	// Weights is optional; nil means an equal split. When set, it must
	// carry a positive weight for every participant.
	Weights map[uuid.UUID]int64
}

func (s *Service) AddExpense(ctx context.Context, req AddExpenseRequest) (*domain.Expense, error) {
	if err := s.requireMember(ctx, req.GroupID, req.ActorID); err != nil {
		return nil, fmt.Errorf("AddExpense: %w", err)
	}

	members, err := s.memberSet(ctx, req.GroupID)
	if err != nil {
		return nil, fmt.Errorf("AddExpense: %w", err)
	}

	if _, ok := members[req.PaidBy]; !ok {
		return nil, fmt.Errorf("AddExpense: payer %s: %w", req.PaidBy, domain.ErrNotGroupMember)
	}
	for _, p := range req.Participants {
		if _, ok := members[p]; !ok {
			return nil, fmt.Errorf("AddExpense: participant %s: %w", p, domain.ErrNotGroupMember)
		}
	}

	shares, err := s.validateSplit(req)
	if err != nil {
		return nil, fmt.Errorf("AddExpense: %w", err)
	}

	expense := &domain.Expense{
		ID:          uuid.New(),
		GroupID:     req.GroupID,
		PaidBy:      req.PaidBy,
		Description: strings.TrimSpace(req.Description),
		Amount:      req.Amount,
		Shares:      shares,
		CreatedBy:   req.ActorID,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.expenses.Create(ctx, expense); err != nil {
		return nil, fmt.Errorf("AddExpense: %w", err)
	}

	logging.FromContext(ctx).Info("expense added",
		"group_id", req.GroupID,
		"expense_id", expense.ID,
		"paid_by", req.PaidBy,
		"amount", req.Amount,
		"participants", len(req.Participants),
	)

	return expense, nil
}

// validateSplit runs the allocation up front so a malformed expense is
// rejected before anything is persisted, and normalizes the participant
// list into weighted share rows (weight 1 for an equal split).
func (s *Service) validateSplit(req AddExpenseRequest) ([]domain.ExpenseShare, error) {
	participants := make([]string, len(req.Participants))
	for i, p := range req.Participants {
		participants[i] = p.String()
	}

	var weights map[string]int64
	if req.Weights != nil {
		weights = make(map[string]int64, len(req.Weights))
		for p, w := range req.Weights {
			weights[p.String()] = w
		}
	}

	if _, err := split.Allocate(req.Amount, participants, weights); err != nil {
		return nil, fmt.Errorf("validateSplit: %w", err)
	}

	shares := make([]domain.ExpenseShare, len(req.Participants))
	for i, p := range req.Participants {
		weight := int64(1)
		if req.Weights != nil {
			weight = req.Weights[p]
		}
		shares[i] = domain.ExpenseShare{UserID: p, Weight: weight}
	}
	return shares, nil
}

func (s *Service) ListExpenses(ctx context.Context, groupID, actorID uuid.UUID) ([]domain.Expense, error) {
	if err := s.requireMember(ctx, groupID, actorID); err != nil {
		return nil, fmt.Errorf("ListExpenses: %w", err)
	}

	expenses, err := s.expenses.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("ListExpenses: %w", err)
	}
	return expenses, nil
}
