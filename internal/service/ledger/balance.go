package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Aryan-Railtown/bill-splitter/internal/domain"
	"github.com/Aryan-Railtown/bill-splitter/internal/logging"
	"github.com/Aryan-Railtown/bill-splitter/internal/split"
)

// MemberBalance is a member's net position: positive means the group owes
// them, negative means they owe the group.
type MemberBalance struct {
	UserID uuid.UUID
	Name   string
	Email  string
	Amount int64
}

// PlannedTransfer is one step of a settlement plan.
type PlannedTransfer struct {
	FromUserID uuid.UUID
	ToUserID   uuid.UUID
	Amount     int64
}

// GroupBalances nets all expenses and recorded settlements of the group into
// one balance per member. Members without any activity are included at zero.
func (s *Service) GroupBalances(ctx context.Context, groupID, actorID uuid.UUID) ([]MemberBalance, error) {
	if err := s.requireMember(ctx, groupID, actorID); err != nil {
		return nil, fmt.Errorf("GroupBalances: %w", err)
	}

	balances, members, err := s.netBalances(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("GroupBalances: %w", err)
	}

	result := make([]MemberBalance, 0, len(members))
	for _, m := range members {
		result = append(result, MemberBalance{
			UserID: m.UserID,
			Name:   m.Name,
			Email:  m.Email,
			Amount: balances[m.UserID.String()],
		})
	}
	return result, nil
}

// SettlementPlan computes the transfers that would bring every member's
// balance to zero, largest debts first.
func (s *Service) SettlementPlan(ctx context.Context, groupID, actorID uuid.UUID) ([]PlannedTransfer, error) {
	if err := s.requireMember(ctx, groupID, actorID); err != nil {
		return nil, fmt.Errorf("SettlementPlan: %w", err)
	}

	balances, _, err := s.netBalances(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("SettlementPlan: %w", err)
	}

	transfers, err := split.PlanSettlement(balances)
	if err != nil {
		return nil, fmt.Errorf("SettlementPlan: %w", err)
	}

	plan := make([]PlannedTransfer, 0, len(transfers))
	for _, t := range transfers {
		from, err := uuid.Parse(t.From)
		if err != nil {
			return nil, fmt.Errorf("SettlementPlan: parse debtor id: %w", err)
		}
		to, err := uuid.Parse(t.To)
		if err != nil {
			return nil, fmt.Errorf("SettlementPlan: parse creditor id: %w", err)
		}
		plan = append(plan, PlannedTransfer{FromUserID: from, ToUserID: to, Amount: t.Amount})
	}
	return plan, nil
}

type RecordSettlementRequest struct {
	GroupID    uuid.UUID
	ActorID    uuid.UUID
	FromUserID uuid.UUID
	ToUserID   uuid.UUID
	Amount     int64
}

func (r RecordSettlementRequest) validate() error {
	if r.Amount <= 0 {
		return fmt.Errorf("amount %d: %w", r.Amount, domain.ErrInvalidAmount)
	}
	if r.FromUserID == r.ToUserID {
		return domain.ErrSelfSettlement
	}
	return nil
}

// RecordSettlement stores a real-world repayment so later balance
// computations account for it.
func (s *Service) RecordSettlement(ctx context.Context, req RecordSettlementRequest) (*domain.Settlement, error) {
	if err := req.validate(); err != nil {
		return nil, fmt.Errorf("RecordSettlement: %w", err)
	}

	if err := s.requireMember(ctx, req.GroupID, req.ActorID); err != nil {
		return nil, fmt.Errorf("RecordSettlement: %w", err)
	}

	members, err := s.memberSet(ctx, req.GroupID)
	if err != nil {
		return nil, fmt.Errorf("RecordSettlement: %w", err)
	}
	if _, ok := members[req.FromUserID]; !ok {
		return nil, fmt.Errorf("RecordSettlement: payer %s: %w", req.FromUserID, domain.ErrNotGroupMember)
	}
	if _, ok := members[req.ToUserID]; !ok {
		return nil, fmt.Errorf("RecordSettlement: payee %s: %w", req.ToUserID, domain.ErrNotGroupMember)
	}

	settlement := &domain.Settlement{
		ID:         uuid.New(),
		GroupID:    req.GroupID,
		FromUserID: req.FromUserID,
		ToUserID:   req.ToUserID,
		Amount:     req.Amount,
		RecordedBy: req.ActorID,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.settlements.Create(ctx, settlement); err != nil {
		return nil, fmt.Errorf("RecordSettlement: %w", err)
	}

	logging.FromContext(ctx).Info("settlement recorded",
		"group_id", req.GroupID,
		"from", req.FromUserID,
		"to", req.ToUserID,
		"amount", req.Amount,
	)

	return settlement, nil
}

func (s *Service) ListSettlements(ctx context.Context, groupID, actorID uuid.UUID) ([]domain.Settlement, error) {
	if err := s.requireMember(ctx, groupID, actorID); err != nil {
		return nil, fmt.Errorf("ListSettlements: %w", err)
	}

	settlements, err := s.settlements.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("ListSettlements: %w", err)
	}
	return settlements, nil
}

// netBalances loads the group's full history and feeds it through the split
// core. A recorded settlement enters the ledger as a payment by the debtor
// with the creditor as sole participant, which moves both toward zero.
func (s *Service) netBalances(ctx context.Context, groupID uuid.UUID) (split.Balances, []domain.GroupMember, error) {
	members, err := s.groups.ListMembers(ctx, groupID)
	if err != nil {
		return nil, nil, fmt.Errorf("netBalances: %w", err)
	}

	expenses, err := s.expenses.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, nil, fmt.Errorf("netBalances: %w", err)
	}

	settlements, err := s.settlements.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, nil, fmt.Errorf("netBalances: %w", err)
	}

	entries := make([]split.Expense, 0, len(expenses)+len(settlements))
	for _, e := range expenses {
		participants := make([]string, len(e.Shares))
		weights := make(map[string]int64, len(e.Shares))
		for i, share := range e.Shares {
			participants[i] = share.UserID.String()
			weights[share.UserID.String()] = share.Weight
		}
		entries = append(entries, split.Expense{
			Payer:        e.PaidBy.String(),
			Amount:       e.Amount,
			Participants: participants,
			Shares:       weights,
		})
	}
	for _, st := range settlements {
		entries = append(entries, split.Expense{
			Payer:        st.FromUserID.String(),
			Amount:       st.Amount,
			Participants: []string{st.ToUserID.String()},
		})
	}

	balances, err := split.BuildBalances(entries)
	if err != nil {
		// Stored rows that fail core validation mean corrupted data, not
		// bad user input.
		return nil, nil, fmt.Errorf("netBalances: %w: %w", domain.ErrUnbalancedLedger, err)
	}

	return balances, members, nil
}
